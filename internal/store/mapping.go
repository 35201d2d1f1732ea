package store

import (
	"github.com/cmmoran/dtogen/pkg/dto"
)

// ToDefinition converts the persisted shape into generator input. Properties
// keep their stored order.
func ToDefinition(d *Dto) dto.Definition {
	def := dto.Definition{
		Name:      d.Name,
		Namespace: d.Namespace,
		Comment:   d.Comment,
		Fields:    make([]dto.Field, 0, len(d.Properties)),
	}
	for _, p := range d.Properties {
		def.Fields = append(def.Fields, dto.Field{
			Name:         p.Name,
			Type:         p.TypeName,
			TypeFullName: p.TypeFullName,
			Comment:      p.Comment,
			IsNullable:   p.IsNullable,
			IsList:       p.IsList,
			HasGetter:    p.HasGetter,
			HasSetter:    p.HasSetter,
		})
	}
	return def
}

// FromDefinition converts generator input into a new, unsaved Dto owned by
// moduleID. Positions follow field order.
func FromDefinition(moduleID int64, def dto.Definition) *Dto {
	d := &Dto{
		ModuleID:   moduleID,
		Name:       def.Name,
		Namespace:  def.Namespace,
		Comment:    def.Comment,
		Properties: make([]Property, 0, len(def.Fields)),
	}
	for i, f := range def.Fields {
		d.Properties = append(d.Properties, Property{
			Position:     i,
			Name:         f.Name,
			TypeName:     f.Type,
			TypeFullName: f.TypeFullName,
			Comment:      f.Comment,
			IsNullable:   f.IsNullable,
			IsList:       f.IsList,
			HasGetter:    f.HasGetter,
			HasSetter:    f.HasSetter,
		})
	}
	return d
}
