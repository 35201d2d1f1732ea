// Package blazor renders DTO definitions and type-model classes as Blazor
// pages and components.
package blazor

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("blazor").ParseFS(templateFS, "templates/*.tmpl"))

// fieldView is the per-field data handed to the templates.
type fieldView struct {
	Label    string
	Prop     string
	ID       string
	Control  string
	CSSClass string
}

func fieldViews(fields []dto.Field, withControls bool) []fieldView {
	out := make([]fieldView, len(fields))
	for i, f := range fields {
		v := fieldView{
			Label: f.Name,
			Prop:  naming.ToPropName(f.Name),
			ID:    naming.ToKebab(f.Name),
		}
		if withControls {
			v.Control = InputControl(declaredName(f))
			v.CSSClass = "form-control"
			if v.Control == ControlCheckbox {
				v.CSSClass = "form-check-input"
			}
		}
		out[i] = v
	}
	return out
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "render %s", name)
	}
	return buf.String(), nil
}

// declaredName is the field's type as written, falling back to the full name.
func declaredName(f dto.Field) string {
	if f.Type != "" {
		return f.Type
	}
	return f.TypeFullName
}
