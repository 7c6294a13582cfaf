// Package modelshim is the client-side toolkit for an API SDK built on a
// model library that exists in two incompatible generations.
//
// - compat: one contract over both generations (parse, field metadata, config, copy, dump)
// - cli: terminal error reporting (CLIError, SilentCLIError, DisplayError)
// - resources: SDK resource models and their registry
// - jsonschema: JSON Schema projection of a model
//
// Design policy:
// - Keep only public APIs in the root package; put engine code under internal/.
// - Generation-specific APIs live in model/v1 and model/v2; callers use compat.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	m, err := compat.ParseInto[resources.Model](payload)
//	if err != nil {
//		cli.DisplayError(err)
//	}
//
//	apiErr := modelshim.NewAPIError(resp.StatusCode, body, resp.Header.Get("x-request-id"))
package modelshim
