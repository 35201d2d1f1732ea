// Package csharp renders the type model as C# source.
package csharp

import (
	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/typemodel"
)

const Name = "csharp"

// Generator emits one file per type with using directives and a file-scoped
// namespace.
type Generator struct{}

var (
	_ generator.NamespaceGenerator = (*Generator)(nil)
	_ generator.DtoGenerator       = (*Generator)(nil)
)

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string            { return Name }
func (g *Generator) Language() code.Language { return code.CSharp }

// GenerateNamespace returns one Code per type, in declaration order. Partial
// types produce partial codes.
func (g *Generator) GenerateNamespace(ns *typemodel.Namespace) result.Of[code.Codes] {
	return generator.Guard(Name, func() result.Of[code.Codes] {
		if ns == nil {
			return result.FailOf[code.Codes](generator.MsgNilNamespace)
		}
		if len(ns.Types) == 0 {
			return result.FailOf[code.Codes](generator.MsgNoType)
		}
		if v := ns.Validate(); v.IsFailure() {
			return result.From(v, code.Codes{})
		}

		usings := ns.Namespaces()
		var codes code.Codes
		for _, t := range ns.Types {
			codes = codes.Append(renderFile(ns.Name, usings, t))
		}
		return result.Ok(codes)
	})
}

// GenerateDto renders def as a partial class in its own namespace.
func (g *Generator) GenerateDto(def *dto.Definition) result.Of[*code.Code] {
	if v := generator.ValidateDto(def); v.IsFailure() {
		return result.From[*code.Code](v, nil)
	}
	ns, err := def.ToNamespace()
	if err != nil {
		return result.FailOfErr[*code.Code](err)
	}
	codes := g.GenerateNamespace(ns)
	if codes.IsFailure() {
		return result.From[*code.Code](codes.Result, nil)
	}
	return result.Ok(codes.Value().Items()[0])
}

func renderFile(namespace string, usings []string, t typemodel.Type) *code.Code {
	w := &writer{}
	for _, u := range usings {
		w.line("using ", u, ";")
	}
	if len(usings) > 0 {
		w.line()
	}
	w.line("namespace ", namespace, ";")
	w.line()
	writeType(w, t)

	var opts []code.Option
	if t.Decl().Inheritance.Has(typemodel.InheritPartial) {
		opts = append(opts, code.Partial())
	}
	return code.New(t.TypeName(), code.CSharp, w.String(), opts...)
}
