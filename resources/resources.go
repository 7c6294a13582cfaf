// Package resources declares the SDK's resource models and a registry that
// looks them up by name.
package resources

import (
	"github.com/reoring/modelshim/compat"
	v1 "github.com/reoring/modelshim/model/v1"
	v2 "github.com/reoring/modelshim/model/v2"
)

// Model describes a model offered by the API.
type Model struct {
	compat.BaseModel
	ID      string `json:"id"`
	Created int64  `json:"created"`
	Object  string `json:"object" default:"model"`
	OwnedBy string `json:"owned_by"`
}

// FileObject describes an uploaded file.
type FileObject struct {
	compat.BaseModel
	ID            string  `json:"id"`
	Bytes         int64   `json:"bytes"`
	CreatedAt     int64   `json:"created_at"`
	Filename      string  `json:"filename"`
	Object        string  `json:"object" default:"file"`
	Purpose       string  `json:"purpose"`
	Status        *string `json:"status" default:"null"`
	StatusDetails *string `json:"status_details" default:"null"`
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	compat.GenericModel
	Object  string `json:"object" default:"list"`
	Data    []T    `json:"data" default:"[]"`
	HasMore bool   `json:"has_more" default:"false"`
}

// Response payloads keep unknown keys so newer API fields survive a round
// trip through an older client.

func (Model) Config() v1.Config          { return v1.Config{Extra: v1.ExtraAllow} }
func (Model) ModelConfig() v2.ConfigDict { return v2.ConfigDict{Extra: "allow"} }

func (FileObject) Config() v1.Config          { return v1.Config{Extra: v1.ExtraAllow} }
func (FileObject) ModelConfig() v2.ConfigDict { return v2.ConfigDict{Extra: "allow"} }
