package blazor

import (
	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/naming"
	"github.com/cmmoran/dtogen/pkg/result"
)

// ListFormGenerator renders a table page listing DTO instances.
type ListFormGenerator struct{}

func NewListFormGenerator() *ListFormGenerator { return &ListFormGenerator{} }

func (g *ListFormGenerator) Name() string            { return "blazor-list" }
func (g *ListFormGenerator) Language() code.Language { return code.BlazorMarkup }

type listView struct {
	Route     string
	Namespace string
	Title     string
	TypeName  string
	Fields    []fieldView
	Options   ListFormOptions
}

// Generate renders one header cell and one row cell per field, in
// declaration order. The page is named <Type>List.
func (g *ListFormGenerator) Generate(def *dto.Definition, opts *ListFormOptions) result.Of[*code.Code] {
	return generator.Guard(g.Name(), func() result.Of[*code.Code] {
		if v := generator.ValidateDto(def); v.IsFailure() {
			return result.From[*code.Code](v, nil)
		}
		if opts == nil {
			return result.FailOf[*code.Code](generator.MsgNilOptions)
		}

		typeName := naming.ToPropName(def.Name)
		plural := naming.Plural(typeName)
		statement, err := render("list.razor.tmpl", listView{
			Route:     "/" + naming.ToKebab(plural),
			Namespace: def.Namespace,
			Title:     plural,
			TypeName:  typeName,
			Fields:    fieldViews(def.Fields, false),
			Options:   *opts,
		})
		if err != nil {
			return result.FailOfErr[*code.Code](err)
		}
		return result.Ok(code.New(typeName+"List", code.BlazorMarkup, statement))
	})
}
