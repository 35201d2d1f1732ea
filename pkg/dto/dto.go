// Package dto is the template-input shape of a data transfer object: a
// named, namespaced, ordered list of typed fields.
package dto

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtogen/pkg/naming"
	"github.com/cmmoran/dtogen/pkg/typemodel"
	"github.com/cmmoran/dtogen/pkg/typepath"
)

var ErrInvalidDefinition = errors.New("invalid dto definition")

const (
	// ComponentSuffix is appended to the DTO name to name its display component.
	ComponentSuffix    = "View"
	// ComponentModel is the component parameter holding the displayed DTO.
	ComponentModel     = "Model"
	// ParameterAttribute marks a Blazor component parameter.
	ParameterAttribute = "Parameter"

	componentsNamespace = "Microsoft.AspNetCore.Components"
)

// Field is one member of a Definition.
type Field struct {
	Name         string `json:"name" yaml:"name" mapstructure:"name"`
	Type         string `json:"type" yaml:"type" mapstructure:"type"`
	TypeFullName string `json:"type_full_name,omitempty" yaml:"type_full_name,omitempty" mapstructure:"type_full_name,omitempty"`
	Comment      string `json:"comment,omitempty" yaml:"comment,omitempty" mapstructure:"comment,omitempty"`
	IsNullable   bool   `json:"is_nullable,omitempty" yaml:"is_nullable,omitempty" mapstructure:"is_nullable,omitempty"`
	IsList       bool   `json:"is_list,omitempty" yaml:"is_list,omitempty" mapstructure:"is_list,omitempty"`
	HasGetter    bool   `json:"has_getter" yaml:"has_getter" mapstructure:"has_getter"`
	HasSetter    bool   `json:"has_setter" yaml:"has_setter" mapstructure:"has_setter"`
}

// Definition describes a DTO. Field order is significant and preserved by
// every generator.
type Definition struct {
	Name      string  `json:"name" yaml:"name" mapstructure:"name"`
	Namespace string  `json:"namespace" yaml:"namespace" mapstructure:"namespace"`
	Comment   string  `json:"comment,omitempty" yaml:"comment,omitempty" mapstructure:"comment,omitempty"`
	Fields    []Field `json:"fields" yaml:"fields" mapstructure:"fields"`
}

// NewField returns a field with a getter and setter.
func NewField(name, typ string) Field {
	return Field{Name: name, Type: typ, HasGetter: true, HasSetter: true}
}

// DeclaredType is the type name as written, preferring the full name.
func (f Field) DeclaredType() string {
	if f.TypeFullName != "" {
		return f.TypeFullName
	}
	if f.Type == "" {
		return "string"
	}
	return f.Type
}

// TypePath resolves the declared type and applies the nullable and list
// flags: a nullable list is List<T?>.
func (f Field) TypePath() (*typepath.TypePath, error) {
	tp, err := typepath.Parse(f.DeclaredType())
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", f.Name)
	}
	if f.IsNullable {
		tp = tp.WithNullable()
	}
	if f.IsList && !tp.IsEnumerable() {
		tp = typepath.ListOf(tp)
	}
	return tp, nil
}

func (d *Definition) Validate() error {
	if d == nil {
		return errors.Wrap(ErrInvalidDefinition, "definition is nil")
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.Wrap(ErrInvalidDefinition, "name is required")
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return errors.Wrapf(ErrInvalidDefinition, "%s: field %d has no name", d.Name, i)
		}
		if _, dup := seen[f.Name]; dup {
			return errors.Wrapf(ErrInvalidDefinition, "%s: duplicate field %s", d.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if _, err := f.TypePath(); err != nil {
			return errors.Wrapf(ErrInvalidDefinition, "%s: %v", d.Name, err)
		}
	}
	return nil
}

// FieldNames lists field names in declaration order.
func (d *Definition) FieldNames() []string {
	out := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = f.Name
	}
	return out
}

// ToClass builds a public partial class with one auto-property per field.
// Fields without a setter become get-only; a field without getter and setter
// keeps both, since a DTO property must be readable.
func (d *Definition) ToClass() (*typemodel.Class, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c, err := typemodel.NewClass(naming.ToPropName(d.Name))
	if err != nil {
		return nil, err
	}
	c.Inheritance = typemodel.InheritPartial
	c.Comment = d.Comment
	for _, f := range d.Fields {
		tp, err := f.TypePath()
		if err != nil {
			return nil, err
		}
		p, err := typemodel.NewProperty(naming.ToPropName(f.Name), tp, "")
		if err != nil {
			return nil, err
		}
		p.Comment = f.Comment
		if f.HasGetter && !f.HasSetter {
			p.Getter = &typemodel.Accessor{}
		}
		if tp.IsEnumerable() && !tp.IsArray() {
			p.Initializer = "new()"
		}
		c.AddMember(p)
	}
	return c, nil
}

// ToNamespace wraps ToClass in the definition's namespace.
func (d *Definition) ToNamespace() (*typemodel.Namespace, error) {
	c, err := d.ToClass()
	if err != nil {
		return nil, err
	}
	ns, err := typemodel.NewNamespace(d.Namespace)
	if err != nil {
		return nil, errors.Wrapf(err, "dto %s", d.Name)
	}
	return ns.AddType(c), nil
}

// ToComponentNamespace builds the code-behind class of the DTO's display
// component, <Name>View. It takes the DTO as a Model parameter and exposes
// each field as a read-only property reading through Model.
func (d *Definition) ToComponentNamespace() (*typemodel.Namespace, error) {
	dtoClass, err := d.ToClass()
	if err != nil {
		return nil, err
	}
	c, err := typemodel.NewClass(dtoClass.Name + ComponentSuffix)
	if err != nil {
		return nil, err
	}
	c.Inheritance = typemodel.InheritPartial
	c.Comment = d.Comment

	modelType, err := typepath.Parse(dtoClass.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "dto %s", d.Name)
	}
	model, err := typemodel.NewProperty(ComponentModel, modelType, "")
	if err != nil {
		return nil, err
	}
	model.AddAttribute(typemodel.Attribute{Name: ParameterAttribute})
	model.Initializer = "new()"
	c.AddMember(model)

	for _, p := range dtoClass.Properties() {
		if p.Name == ComponentModel || p.Name == c.Name {
			return nil, errors.Wrapf(ErrInvalidDefinition, "%s: field %s clashes with the component", d.Name, p.Name)
		}
		view, err := typemodel.NewProperty(p.Name, p.Type, "")
		if err != nil {
			return nil, err
		}
		view.Comment = p.Comment
		view.Getter = &typemodel.Accessor{Body: "return " + ComponentModel + "." + p.Name + ";"}
		c.AddMember(view)
	}

	ns, err := typemodel.NewNamespace(d.Namespace)
	if err != nil {
		return nil, errors.Wrapf(err, "dto %s", d.Name)
	}
	ns.Usings = []string{componentsNamespace}
	return ns.AddType(c), nil
}
