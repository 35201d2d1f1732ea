package typemodel

import (
	"sort"

	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

type TypeKind int

const (
	KindClass TypeKind = iota
	KindStruct
	KindInterface
)

func (k TypeKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	default:
		return "class"
	}
}

// Type is a declaration that can live in a Namespace.
type Type interface {
	TypeName() string
	TypeKind() TypeKind
	Decl() *Declaration
	Validate() result.Result
}

// Declaration is the shape shared by classes, structs and interfaces.
type Declaration struct {
	Member
	TypeParams []string
	BaseTypes  []*typepath.TypePath
	Members    []TypeMember
}

func (d *Declaration) TypeName() string   { return d.Name }
func (d *Declaration) Decl() *Declaration { return d }

// isNil reports whether t is nil or a typed nil pointer.
func isNil(t Type) bool {
	return t == nil || t.Decl() == nil
}

// AddTypeParam adds a generic parameter unless already declared.
func (d *Declaration) AddTypeParam(name string) bool {
	for _, p := range d.TypeParams {
		if p == name {
			return false
		}
	}
	d.TypeParams = append(d.TypeParams, name)
	return true
}

func (d *Declaration) AddMember(members ...TypeMember) {
	d.Members = append(d.Members, members...)
}

func (d *Declaration) Properties() []*Property {
	var out []*Property
	for _, m := range d.Members {
		if p, ok := m.(*Property); ok && p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (d *Declaration) Methods() []*Method {
	var out []*Method
	for _, m := range d.Members {
		if mm, ok := m.(*Method); ok && mm != nil {
			out = append(out, mm)
		}
	}
	return out
}

// Namespaces lists every namespace the declaration's signatures reference.
func (d *Declaration) Namespaces() []string {
	seen := make(map[string]struct{})
	add := func(tp *typepath.TypePath) {
		if tp == nil {
			return
		}
		for _, ns := range tp.Namespaces() {
			seen[ns] = struct{}{}
		}
	}
	for _, b := range d.BaseTypes {
		add(b)
	}
	for _, m := range d.Members {
		if nilMember(m) {
			continue
		}
		switch mm := m.(type) {
		case *Property:
			add(mm.Type)
		case *Method:
			add(mm.ReturnType)
			for _, a := range mm.Arguments.All() {
				add(a.Type)
			}
			if mm.IsAsync {
				seen["System.Threading.Tasks"] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func (d *Declaration) validate() result.Result {
	if d == nil {
		return result.Fail("Type is nil.")
	}
	results := []result.Result{d.Member.Validate()}
	for _, m := range d.Members {
		if nilMember(m) {
			results = append(results, result.Failf("Type %s: nil member.", d.Name))
			continue
		}
		results = append(results, m.Validate())
	}
	return result.Combine(results...)
}

// Class is a reference type declaration.
type Class struct {
	Declaration
	IsStatic bool
}

func NewClass(name string) (*Class, error) {
	if err := requireName("class", name); err != nil {
		return nil, err
	}
	return &Class{Declaration: Declaration{Member: Member{Name: name, Access: AccessPublic}}}, nil
}

func (c *Class) TypeKind() TypeKind      { return KindClass }
func (c *Class) Validate() result.Result { return c.Decl().validate() }

func (c *Class) Decl() *Declaration {
	if c == nil {
		return nil
	}
	return &c.Declaration
}

// Struct is a value type declaration.
type Struct struct {
	Declaration
	IsReadOnly bool
}

func NewStruct(name string) (*Struct, error) {
	if err := requireName("struct", name); err != nil {
		return nil, err
	}
	return &Struct{Declaration: Declaration{Member: Member{Name: name, Access: AccessPublic}}}, nil
}

func (s *Struct) TypeKind() TypeKind      { return KindStruct }
func (s *Struct) Validate() result.Result { return s.Decl().validate() }

func (s *Struct) Decl() *Declaration {
	if s == nil {
		return nil
	}
	return &s.Declaration
}

// Interface is a contract declaration. Its members carry no bodies.
type Interface struct {
	Declaration
}

func NewInterface(name string) (*Interface, error) {
	if err := requireName("interface", name); err != nil {
		return nil, err
	}
	return &Interface{Declaration: Declaration{Member: Member{Name: name, Access: AccessPublic}}}, nil
}

func (i *Interface) TypeKind() TypeKind      { return KindInterface }
func (i *Interface) Validate() result.Result { return i.Decl().validate() }

func (i *Interface) Decl() *Declaration {
	if i == nil {
		return nil
	}
	return &i.Declaration
}

// Namespace groups types and is the unit handed to a namespace generator.
type Namespace struct {
	Name   string
	Usings []string
	Types  []Type
}

func NewNamespace(name string) (*Namespace, error) {
	if err := requireName("namespace", name); err != nil {
		return nil, err
	}
	return &Namespace{Name: name}, nil
}

// AddType appends t and returns the namespace for chaining.
func (n *Namespace) AddType(t Type) *Namespace {
	n.Types = append(n.Types, t)
	return n
}

func (n *Namespace) Classes() []*Class {
	var out []*Class
	for _, t := range n.Types {
		if c, ok := t.(*Class); ok && c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FirstClass returns the first class in declaration order.
func (n *Namespace) FirstClass() (*Class, bool) {
	classes := n.Classes()
	if len(classes) == 0 {
		return nil, false
	}
	return classes[0], true
}

func (n *Namespace) Validate() result.Result {
	results := []result.Result{}
	if n.Name == "" {
		results = append(results, result.Fail("Namespace name is required."))
	}
	for _, t := range n.Types {
		if isNil(t) {
			results = append(results, result.Failf("Namespace %s: nil type.", n.Name))
			continue
		}
		results = append(results, t.Validate())
	}
	return result.Combine(results...)
}

// Namespaces returns the using set for the namespace: explicit usings plus
// everything referenced by its types, minus the namespace itself.
func (n *Namespace) Namespaces() []string {
	seen := make(map[string]struct{})
	for _, u := range n.Usings {
		seen[u] = struct{}{}
	}
	for _, t := range n.Types {
		if isNil(t) {
			continue
		}
		for _, ns := range t.Decl().Namespaces() {
			seen[ns] = struct{}{}
		}
	}
	delete(seen, n.Name)
	delete(seen, "")
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
