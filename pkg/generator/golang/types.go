package golang

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/dtogen/internal/model"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

const (
	timePkg = "time"
	uuidPkg = "github.com/google/uuid"
)

var systemTypes = map[string]*model.TypeRef{
	"String":         model.Builtin("string"),
	"Boolean":        model.Builtin("bool"),
	"Byte":           model.Builtin("byte"),
	"SByte":          model.Builtin("int8"),
	"Char":           model.Builtin("rune"),
	"Int16":          model.Builtin("int16"),
	"UInt16":         model.Builtin("uint16"),
	"Int32":          model.Builtin("int32"),
	"UInt32":         model.Builtin("uint32"),
	"Int64":          model.Builtin("int64"),
	"UInt64":         model.Builtin("uint64"),
	"IntPtr":         model.Builtin("int"),
	"UIntPtr":        model.Builtin("uint"),
	"Single":         model.Builtin("float32"),
	"Double":         model.Builtin("float64"),
	"Decimal":        model.Builtin("float64"),
	"Object":         model.Builtin("any"),
	"DateTime":       model.Named(timePkg, "Time"),
	"DateTimeOffset": model.Named(timePkg, "Time"),
	"DateOnly":       model.Named(timePkg, "Time"),
	"TimeOnly":       model.Named(timePkg, "Time"),
	"TimeSpan":       model.Named(timePkg, "Duration"),
	"Guid":           model.Named(uuidPkg, "UUID"),
	"Uri":            model.Builtin("string"),
}

var dictionaryNames = map[string]bool{
	"Dictionary":          true,
	"IDictionary":         true,
	"IReadOnlyDictionary": true,
}

// typeRef maps a C# type path onto a Go type. Nullable value types become
// pointers, enumerables become slices and dictionaries become maps. Unknown
// names are assumed to be declared in the generated package.
func typeRef(tp *typepath.TypePath) *model.TypeRef {
	if tp == nil {
		return model.Builtin("any")
	}
	if tp.IsNullable() {
		inner := typeRef(tp.Elem())
		if inner.Nilable() {
			return inner
		}
		return model.PointerTo(inner)
	}
	if tp.IsEnumerable() {
		elem := tp.ElementType()
		if tp.IsArray() && elem.Namespace() == "System" && elem.Name() == "Byte" {
			return model.SliceOf(model.Builtin("byte"))
		}
		return model.SliceOf(typeRef(elem))
	}

	args := tp.Args()
	if dictionaryNames[tp.Name()] && len(args) == 2 {
		return model.MapOf(typeRef(args[0]), typeRef(args[1]))
	}
	if tp.Namespace() == "System" && len(args) == 0 {
		if t, ok := systemTypes[tp.Name()]; ok {
			return t
		}
	}

	refs := make([]*model.TypeRef, len(args))
	for i, a := range args {
		refs[i] = typeRef(a)
	}
	return model.Named("", tp.Name(), refs...)
}

// goType renders a TypeRef as jennifer code.
func goType(t *model.TypeRef) *jen.Statement {
	if t == nil {
		return jen.Any()
	}
	switch t.Kind {
	case model.KindPointer:
		return jen.Op("*").Add(goType(t.Elem))
	case model.KindSlice:
		return jen.Index().Add(goType(t.Elem))
	case model.KindMap:
		return jen.Map(goType(t.Key)).Add(goType(t.Elem))
	case model.KindNamed:
		s := jen.Id(t.Name)
		if t.PkgPath != "" {
			s = jen.Qual(t.PkgPath, t.Name)
		}
		if len(t.Args) > 0 {
			args := make([]jen.Code, len(t.Args))
			for i, a := range t.Args {
				args[i] = goType(a)
			}
			s = s.Types(args...)
		}
		return s
	default:
		return jen.Id(t.Name)
	}
}
