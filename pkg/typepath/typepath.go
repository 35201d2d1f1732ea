// Package typepath parses and renders type names.
//
// A TypePath is a text-based carrier for a type reference such as "int",
// "System.Collections.Generic.List<string>" or
// "System.Collections.Generic.List`1[[System.String, mscorlib]]". It never
// resolves against live reflection metadata: unknown names are kept as-is.
package typepath

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrEmptyTypeName = errors.New("type name is required")
	ErrMalformed     = errors.New("malformed type name")
)

type Kind int

const (
	KindInvalid  Kind = iota
	KindNamed         // System.String, MyType, List<T>
	KindNullable      // T?
	KindArray         // T[]
)

const (
	systemNamespace      = "System"
	collectionsNamespace = "System.Collections.Generic"
	tasksNamespace       = "System.Threading.Tasks"
)

// TypePath is an immutable type reference.
type TypePath struct {
	kind      Kind
	namespace string
	name      string
	args      []*TypePath
	elem      *TypePath
}

// Named builds a named type reference, optionally generic.
func Named(namespace, name string, args ...*TypePath) *TypePath {
	return &TypePath{
		kind:      KindNamed,
		namespace: namespace,
		name:      name,
		args:      append([]*TypePath(nil), args...),
	}
}

// ArrayOf returns elem[].
func ArrayOf(elem *TypePath) *TypePath {
	return &TypePath{kind: KindArray, elem: elem}
}

// Enumerable returns System.Collections.Generic.IEnumerable<elem>.
func Enumerable(elem *TypePath) *TypePath {
	return Named(collectionsNamespace, "IEnumerable", elem)
}

// ListOf returns System.Collections.Generic.List<elem>.
func ListOf(elem *TypePath) *TypePath {
	return Named(collectionsNamespace, "List", elem)
}

// ParseEnumerable parses s and wraps it as IEnumerable<s>.
func ParseEnumerable(s string) (*TypePath, error) {
	elem, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Enumerable(elem), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *TypePath {
	tp, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return tp
}

func (t *TypePath) Kind() Kind        { return t.kind }
func (t *TypePath) Namespace() string { return t.namespace }
func (t *TypePath) Name() string      { return t.name }
func (t *TypePath) Elem() *TypePath   { return t.elem }
func (t *TypePath) IsNullable() bool  { return t.kind == KindNullable }
func (t *TypePath) IsArray() bool     { return t.kind == KindArray }
func (t *TypePath) IsGeneric() bool   { return t.kind == KindNamed && len(t.args) > 0 }
func (t *TypePath) Args() []*TypePath { return append([]*TypePath(nil), t.args...) }
func (t *TypePath) String() string    { return t.CSharp() }

func (t *TypePath) Equal(o *TypePath) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.FullName() == o.FullName()
}

// WithNullable returns t wrapped as nullable. Already-nullable paths are
// returned unchanged.
func (t *TypePath) WithNullable() *TypePath {
	if t.kind == KindNullable {
		return t
	}
	return &TypePath{kind: KindNullable, elem: t}
}

// WithoutNullable strips one nullable wrapper, if any.
func (t *TypePath) WithoutNullable() *TypePath {
	if t.kind == KindNullable {
		return t.elem
	}
	return t
}

var enumerableNames = map[string]bool{
	"IEnumerable":          true,
	"ICollection":          true,
	"IList":                true,
	"List":                 true,
	"IReadOnlyList":        true,
	"IReadOnlyCollection":  true,
	"HashSet":              true,
	"ISet":                 true,
	"Collection":           true,
	"ObservableCollection": true,
}

// IsEnumerable reports whether t is an array or a single-argument collection.
func (t *TypePath) IsEnumerable() bool {
	switch t.kind {
	case KindArray:
		return true
	case KindNamed:
		return len(t.args) == 1 && enumerableNames[t.name]
	}
	return false
}

// ElementType returns the element of an enumerable, or nil.
func (t *TypePath) ElementType() *TypePath {
	if !t.IsEnumerable() {
		return nil
	}
	if t.kind == KindArray {
		return t.elem
	}
	return t.args[0]
}

// CSharp renders t as a C# type expression using keyword aliases and short
// names. Namespaces are expected to be brought in with using directives.
func (t *TypePath) CSharp() string {
	var sb strings.Builder
	t.render(&sb, false)
	return sb.String()
}

// FullName renders t with every namespace spelled out.
func (t *TypePath) FullName() string {
	var sb strings.Builder
	t.render(&sb, true)
	return sb.String()
}

func (t *TypePath) render(sb *strings.Builder, full bool) {
	switch t.kind {
	case KindNullable:
		t.elem.render(sb, full)
		sb.WriteByte('?')
	case KindArray:
		t.elem.render(sb, full)
		sb.WriteString("[]")
	default:
		if !full && len(t.args) == 0 && t.namespace == systemNamespace {
			if kw, ok := keywordFor[t.name]; ok {
				sb.WriteString(kw)
				return
			}
		}
		if full && t.namespace != "" {
			sb.WriteString(t.namespace)
			sb.WriteByte('.')
		}
		sb.WriteString(t.name)
		if len(t.args) > 0 {
			sb.WriteByte('<')
			for i, a := range t.args {
				if i > 0 {
					sb.WriteString(", ")
				}
				a.render(sb, full)
			}
			sb.WriteByte('>')
		}
	}
}

// Namespaces returns every namespace referenced by t, including generic
// arguments and element types. The result is sorted and free of duplicates.
func (t *TypePath) Namespaces() []string {
	seen := make(map[string]struct{})
	t.collectNamespaces(seen)
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

func (t *TypePath) collectNamespaces(seen map[string]struct{}) {
	if t == nil {
		return
	}
	if t.namespace != "" {
		seen[t.namespace] = struct{}{}
	}
	t.elem.collectNamespaces(seen)
	for _, a := range t.args {
		a.collectNamespaces(seen)
	}
}
