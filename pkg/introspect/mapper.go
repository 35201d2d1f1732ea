package introspect

import (
	"go/types"

	"github.com/cmmoran/dtogen/internal/model"
	"github.com/cmmoran/dtogen/pkg/dto"
)

// wellKnown maps qualified Go named types to their DTO spelling.
var wellKnown = map[string]string{
	"time.Time":                   "DateTime",
	"time.Duration":               "TimeSpan",
	"github.com/google/uuid.UUID": "Guid",
	"encoding/json.RawMessage":    "string",
	"database/sql.NullString":     "string?",
	"database/sql.NullInt64":      "long?",
	"database/sql.NullInt32":      "int?",
	"database/sql.NullBool":       "bool?",
	"database/sql.NullFloat64":    "double?",
	"database/sql.NullTime":       "DateTime?",
}

var basics = map[types.BasicKind]string{
	types.Bool:    "bool",
	types.String:  "string",
	types.Int:     "long",
	types.Int8:    "sbyte",
	types.Int16:   "short",
	types.Int32:   "int",
	types.Int64:   "long",
	types.Uint:    "ulong",
	types.Uint8:   "byte",
	types.Uint16:  "ushort",
	types.Uint32:  "uint",
	types.Uint64:  "ulong",
	types.Uintptr: "ulong",
	types.Float32: "float",
	types.Float64: "double",
}

type fieldType struct {
	name     string
	nullable bool
	list     bool
	seq      bool // name already spells a sequence
}

func (f fieldType) String() string {
	s := f.name
	if f.nullable {
		s += "?"
	}
	if f.list {
		s = "List<" + s + ">"
	}
	return s
}

// mapType converts a checked Go type to a DTO field type. Pointers become
// nullable and slices become lists; anything without a mapping is object.
func mapType(t types.Type) fieldType {
	switch tt := t.(type) {
	case *types.Alias:
		return mapType(types.Unalias(tt))
	case *types.Pointer:
		ft := mapType(tt.Elem())
		if !ft.list && !ft.seq {
			ft.nullable = true
		}
		return ft
	case *types.Slice:
		return mapSequence(tt.Elem())
	case *types.Array:
		return mapSequence(tt.Elem())
	case *types.Map:
		return fieldType{name: "Dictionary<" + mapType(tt.Key()).String() + "," + mapType(tt.Elem()).String() + ">"}
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil {
			if n, ok := wellKnown[obj.Pkg().Path()+"."+obj.Name()]; ok {
				return parseWellKnown(n)
			}
		}
		if _, ok := tt.Underlying().(*types.Struct); ok {
			return fieldType{name: obj.Name()}
		}
		return mapType(tt.Underlying())
	case *types.Basic:
		if n, ok := basics[tt.Kind()]; ok {
			return fieldType{name: n}
		}
	}
	return fieldType{name: "object"}
}

func mapSequence(elem types.Type) fieldType {
	if b, ok := elem.Underlying().(*types.Basic); ok && b.Kind() == types.Uint8 {
		return fieldType{name: "byte[]", seq: true}
	}
	ft := mapType(elem)
	// A list flag wraps only a scalar, so nested sequences spell the full type.
	if ft.list || ft.seq {
		return fieldType{name: "List<" + ft.String() + ">", seq: true}
	}
	ft.list = true
	return ft
}

func parseWellKnown(n string) fieldType {
	if len(n) > 1 && n[len(n)-1] == '?' {
		return fieldType{name: n[:len(n)-1], nullable: true}
	}
	return fieldType{name: n}
}

// toDefinition maps a loaded struct onto a DTO definition in namespace.
func toDefinition(raw *model.RawStruct, namespace string) dto.Definition {
	def := dto.Definition{
		Name:      raw.Name,
		Namespace: namespace,
		Comment:   raw.Comment,
		Fields:    make([]dto.Field, 0, len(raw.Fields)),
	}
	for _, f := range raw.Fields {
		ft := mapType(f.Type)
		def.Fields = append(def.Fields, dto.Field{
			Name:       f.Name,
			Type:       ft.name,
			Comment:    f.Comment,
			IsNullable: ft.nullable,
			IsList:     ft.list,
			HasGetter:  true,
			HasSetter:  true,
		})
	}
	return def
}
