//go:build !modelv1

package compat

import v2 "github.com/reoring/modelshim/model/v2"

const linkedVersion = v2.Version
