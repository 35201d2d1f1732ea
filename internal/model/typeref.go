package model

type Kind int

const (
	KindInvalid Kind = iota
	KindBuiltin      // string, int32, bool, etc.
	KindNamed        // declared or imported named type
	KindPointer      // *T
	KindSlice        // []T
	KindMap          // map[K]V
)

// TypeRef is a Go type expression to be emitted by a generator.
type TypeRef struct {
	Kind    Kind
	PkgPath string // "" for builtins and local types
	Name    string // "string", "UUID", "MyType"
	Args    []*TypeRef
	Key     *TypeRef // for Map
	Elem    *TypeRef // for Ptr, Slice and Map values
}

func Builtin(name string) *TypeRef { return &TypeRef{Kind: KindBuiltin, Name: name} }

func Named(pkgPath, name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindNamed, PkgPath: pkgPath, Name: name, Args: args}
}

func PointerTo(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindPointer, Elem: elem} }
func SliceOf(elem *TypeRef) *TypeRef   { return &TypeRef{Kind: KindSlice, Elem: elem} }

func MapOf(key, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindMap, Key: key, Elem: elem}
}

// Nilable reports whether the zero value of t is already nil, so wrapping
// it in a pointer adds nothing.
func (t *TypeRef) Nilable() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindPointer, KindSlice, KindMap:
		return true
	case KindBuiltin:
		return t.Name == "any"
	}
	return false
}
