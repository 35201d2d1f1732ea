package blazor

import (
	"strings"

	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator"
	"github.com/cmmoran/dtogen/pkg/naming"
	"github.com/cmmoran/dtogen/pkg/result"
)

const (
	ControlCheckbox = "InputCheckbox"
	ControlNumber   = "InputNumber"
	ControlDate     = "InputDate"
	ControlText     = "InputText"
)

// InputControl picks the Blazor input component for a declared type name.
// The match is case-insensitive and ignores a nullable suffix and a System
// namespace prefix.
func InputControl(typeName string) string {
	t := strings.ToLower(strings.TrimSpace(typeName))
	t = strings.TrimSuffix(t, "?")
	t = strings.TrimPrefix(t, "system.")
	switch t {
	case "bool", "boolean":
		return ControlCheckbox
	case "int", "long", "float", "double", "decimal",
		"int32", "int64", "single":
		return ControlNumber
	case "datetime", "datetimeoffset":
		return ControlDate
	default:
		return ControlText
	}
}

// DetailFormGenerator renders an edit form for one DTO instance.
type DetailFormGenerator struct{}

func NewDetailFormGenerator() *DetailFormGenerator { return &DetailFormGenerator{} }

func (g *DetailFormGenerator) Name() string            { return "blazor-detail" }
func (g *DetailFormGenerator) Language() code.Language { return code.BlazorMarkup }

type detailView struct {
	Route           string
	Namespace       string
	Title           string
	TypeName        string
	SaveCommandName string
	Fields          []fieldView
}

// Generate renders one input block per field, in declaration order. The
// page is named <Type>Detail.
func (g *DetailFormGenerator) Generate(def *dto.Definition, opts *DetailFormOptions) result.Of[*code.Code] {
	return generator.Guard(g.Name(), func() result.Of[*code.Code] {
		if v := generator.ValidateDto(def); v.IsFailure() {
			return result.From[*code.Code](v, nil)
		}
		if opts == nil {
			return result.FailOf[*code.Code](generator.MsgNilOptions)
		}

		save := naming.Sanitize(strings.TrimSpace(opts.SaveCommandName))
		if save == "" {
			save = DefaultSaveCommandName
		}
		typeName := naming.ToPropName(def.Name)
		statement, err := render("detail.razor.tmpl", detailView{
			Route:           "/" + naming.ToKebab(typeName) + "/edit",
			Namespace:       def.Namespace,
			Title:           typeName,
			TypeName:        typeName,
			SaveCommandName: save,
			Fields:          fieldViews(def.Fields, true),
		})
		if err != nil {
			return result.FailOfErr[*code.Code](err)
		}
		return result.Ok(code.New(typeName+"Detail", code.BlazorMarkup, statement))
	})
}
