// Package ffi holds the generated libopus bindings. opus_ffi.go is written
// by opusbind from opus_ffi.h and is not checked in.
package ffi

//go:generate go run github.com/arc-language/opusbind/cmd/opusbind generate
