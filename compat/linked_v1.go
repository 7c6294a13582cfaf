//go:build modelv1

package compat

import v1 "github.com/reoring/modelshim/model/v1"

const linkedVersion = v1.Version
