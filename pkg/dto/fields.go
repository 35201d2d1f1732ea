package dto

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseFields parses the field DSL used on the command line.
// Format: "Id:int,Email:string?,Tags:string[],Notes:string:free text"
// Commas inside generic arguments ("Map:Dictionary<string,int>") do not
// separate fields.
//
//   - a trailing "?" marks the field nullable
//   - a trailing "[]" marks the field as a list
//   - an optional third segment is the field comment
func ParseFields(s string) ([]Field, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var fields []Field
	for _, part := range splitTopLevel(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := parseField(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseField(spec string) (Field, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return Field{}, errors.Newf("invalid field spec %q: expected 'name:type'", spec)
	}
	name := strings.TrimSpace(parts[0])
	typ := strings.TrimSpace(parts[1])
	if name == "" {
		return Field{}, errors.Newf("invalid field spec %q: empty field name", spec)
	}
	if typ == "" {
		return Field{}, errors.Newf("invalid field spec %q: empty field type", spec)
	}

	f := NewField(name, typ)
	if len(parts) == 3 {
		f.Comment = strings.TrimSpace(parts[2])
	}
	if strings.HasSuffix(f.Type, "[]") {
		f.IsList = true
		f.Type = strings.TrimSuffix(f.Type, "[]")
	}
	if strings.HasSuffix(f.Type, "?") {
		f.IsNullable = true
		f.Type = strings.TrimSuffix(f.Type, "?")
	}
	return f, nil
}

func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
