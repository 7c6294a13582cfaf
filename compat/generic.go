package compat

import "github.com/reoring/modelshim/model"

// BaseModel is the base every model embeds.
type BaseModel = model.Base

// GenericModel is the base for type-parameterized models, for example
//
//	type Page[T any] struct {
//		compat.GenericModel
//		Data []T `json:"data"`
//	}
type GenericModel = model.GenericModel
