package introspect

import (
	"reflect"
	"strings"
)

// omitted reports whether a field tag excludes the field. Without filters any
// tag with a "-" part excludes it.
func omitted(tag reflect.StructTag, opts *Options) bool {
	tagMap := structTagToMap(tag)
	if len(tagMap) == 0 {
		return false
	}

	if len(opts.ExcludeByTags) == 0 {
		for _, v := range tagMap {
			if containsTagPart(v, "-") {
				return true
			}
		}
		return false
	}

	for _, f := range opts.ExcludeByTags {
		v, ok := tagMap[f.Key]
		if !ok {
			continue
		}
		if containsTagPart(v, f.Value) {
			return true
		}
	}

	return false
}

// structTagToMap converts a reflect.StructTag into a key/value map.
func structTagToMap(tag reflect.StructTag) map[string]string {
	m := map[string]string{}
	raw := strings.TrimSpace(string(tag))
	for raw != "" {
		key, rest, ok := strings.Cut(raw, ":\"")
		if !ok {
			break
		}
		end := strings.Index(rest, "\"")
		if end < 0 {
			break
		}
		m[strings.TrimSpace(key)] = rest[:end]
		raw = strings.TrimSpace(rest[end+1:])
	}
	return m
}

// containsTagPart splits a tag value on ';' and ',' and reports whether any
// fragment equals expected.
func containsTagPart(tagVal, expected string) bool {
	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if strings.TrimSpace(part) == expected {
			return true
		}
	}
	return false
}

// embeddingTags mark a named struct field whose fields are lifted into the
// parent, as ORMs and decoders do.
var embeddingTags = []TagFilter{
	{Key: "gorm", Value: "embedded"},
	{Key: "db", Value: "embedded"},
	{Key: "json", Value: "inline"},
	{Key: "yaml", Value: "inline"},
	{Key: "mapstructure", Value: "squash"},
}

func tagEmbedded(tag reflect.StructTag) bool {
	for _, f := range embeddingTags {
		if v, ok := tag.Lookup(f.Key); ok && containsTagPart(v, f.Value) {
			return true
		}
	}
	return false
}

func deprecated(comment string) bool {
	return strings.Contains(strings.ToLower(comment), "deprecated")
}
