package blazor

import (
	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/generator/csharp"
	"github.com/cmmoran/dtogen/pkg/naming"
	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/typemodel"
)

// ComponentGenerator turns the first class of a namespace into a Blazor
// component: markup plus a partial code-behind class. Component parameters
// are not rendered in the markup.
type ComponentGenerator struct {
	cs *csharp.Generator
}

var _ generator.NamespaceGenerator = (*ComponentGenerator)(nil)

func NewComponentGenerator() *ComponentGenerator {
	return &ComponentGenerator{cs: csharp.New()}
}

func (g *ComponentGenerator) Name() string            { return "blazor-component" }
func (g *ComponentGenerator) Language() code.Language { return code.BlazorMarkup }

type componentView struct {
	Namespace string
	CSSClass  string
	Fields    []fieldView
}

// GenerateNamespace returns the markup followed by the code-behind. The input
// namespace and class are left untouched.
func (g *ComponentGenerator) GenerateNamespace(ns *typemodel.Namespace) result.Of[code.Codes] {
	return generator.Guard(g.Name(), func() result.Of[code.Codes] {
		if ns == nil {
			return result.FailOf[code.Codes](generator.MsgNilNamespace)
		}
		cls, ok := ns.FirstClass()
		if !ok {
			return result.FailOf[code.Codes](generator.MsgNoClass)
		}
		if v := cls.Validate(); v.IsFailure() {
			return result.From(v, code.Codes{})
		}

		var fields []fieldView
		for _, p := range cls.Properties() {
			if !p.Access.Has(typemodel.AccessPublic) || p.HasAttribute(dto.ParameterAttribute) {
				continue
			}
			fields = append(fields, fieldView{Label: p.Name, Prop: p.Name})
		}
		markup, err := render("component.razor.tmpl", componentView{
			Namespace: ns.Name,
			CSSClass:  naming.ToKebab(cls.Name),
			Fields:    fields,
		})
		if err != nil {
			return result.FailOfErr[code.Codes](err)
		}

		partial := *cls
		partial.Inheritance |= typemodel.InheritPartial
		behindNs := &typemodel.Namespace{Name: ns.Name, Usings: ns.Usings}
		behind := g.cs.GenerateNamespace(behindNs.AddType(&partial))
		if behind.IsFailure() {
			return result.From(behind.Result, code.Codes{})
		}
		cs := behind.Value().Items()[0]

		return result.Ok(code.NewCodes(
			code.New(cls.Name, code.BlazorMarkup, markup),
			code.New(cls.Name, code.BlazorCodeBehind, cs.Statement(),
				code.Partial(),
				code.WithFileName(cls.Name+"."+code.BlazorCodeBehind.Extension),
			),
		))
	})
}
