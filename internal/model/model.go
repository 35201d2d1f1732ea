package model

import (
	"go/types"
	"reflect"
)

// RawField is a struct field as found in loaded Go source.
type RawField struct {
	Name       string            // Go identifier
	Comment    string            // doc or trailing comment
	Type       types.Type        // checked type
	Tag        reflect.StructTag // the raw tag literal, unquoted
	IsExport   bool              // ast.IsExported(Name)
	IsEmbedded bool
	Deprecated bool
}

// RawStruct is a struct declaration as found in loaded Go source.
type RawStruct struct {
	Name    string // type name
	Comment string
	Fields  []*RawField
	PkgPath string // e.g. "github.com/you/project/model"
	PkgName string
}

type RawStructs []*RawStruct

// Find returns the first struct named name, or nil.
func (x RawStructs) Find(name string) *RawStruct {
	for _, s := range x {
		if s.Name == name {
			return s
		}
	}
	return nil
}
