// Package generator defines the contracts shared by every code generator.
//
// Generators are pure: they read their input, allocate local builders and
// return a result. They never write files and never mutate their input, so
// independent calls may run concurrently.
package generator

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/typemodel"
)

const (
	MsgNoClass      = "No class definition found."
	MsgNoType       = "No type definition found."
	MsgNilDto       = "DTO definition is required."
	MsgNilOptions   = "Options are required."
	MsgNilNamespace = "Namespace is required."
)

// Engine is the common identity of every generator.
type Engine interface {
	Name() string
	Language() code.Language
}

// NamespaceGenerator renders a whole namespace.
type NamespaceGenerator interface {
	Engine
	GenerateNamespace(ns *typemodel.Namespace) result.Of[code.Codes]
}

// DtoGenerator renders a single DTO definition into one code unit.
type DtoGenerator interface {
	Engine
	GenerateDto(def *dto.Definition) result.Of[*code.Code]
}

// Guard runs fn and converts a panic into a failed result carrying the
// recovered value as an error.
func Guard[T any](name string, fn func() result.Of[T]) (out result.Of[T]) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = errors.New(fmt.Sprint(r))
			}
			out = result.FailOfErr[T](errors.Wrapf(err, "%s generator", name))
		}
	}()
	return fn()
}

// ValidateDto checks the definition and converts a failure into a result.
func ValidateDto(def *dto.Definition) result.Result {
	if def == nil {
		return result.Fail(MsgNilDto)
	}
	if err := def.Validate(); err != nil {
		return result.FailErr(err)
	}
	return result.Succeed()
}
