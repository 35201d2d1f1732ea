package introspect

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// TagFilter excludes a field when the struct tag Key contains Value.
type TagFilter struct {
	Key   string `json:"key" yaml:"key" toml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" toml:"value" mapstructure:"value"`
}

// Options control loading and filtering.
//
// InDir             – directory the patterns are resolved in
// Patterns          – package patterns, "./..." by default
// Namespace         – namespace for every definition; derived from the module path when empty
// RootNamespace     – replaces the module path part of a derived namespace
// ExcludeDeprecated – skip structs and fields whose comment mentions "deprecated"
// ExcludeTypes      – names of structs to skip (case-insensitive)
// ExcludeByTags     – filters to skip fields; without filters any "-" tag value skips
type Options struct {
	InDir             string      `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	Patterns          []string    `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty" mapstructure:"patterns,omitempty"`
	Namespace         string      `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty" mapstructure:"namespace,omitempty"`
	RootNamespace     string      `json:"root_namespace,omitempty" yaml:"root_namespace,omitempty" toml:"root_namespace,omitempty" mapstructure:"root_namespace,omitempty"`
	ExcludeDeprecated bool        `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" toml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeTypes      []string    `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeByTags     []TagFilter `json:"exclude_by_tags,omitempty" yaml:"exclude_by_tags,omitempty" toml:"exclude_by_tags,omitempty" mapstructure:"exclude_by_tags,omitempty"`

	Logger *zap.Logger `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
}

func NewOptions() *Options {
	return &Options{
		InDir:    ".",
		Patterns: []string{"./..."},
	}
}

// Normalize parses "key:value" exclusion filters, resolves InDir and fills
// defaults.
func (o *Options) Normalize(excludeByTagsStrings ...string) error {
	for _, s := range excludeByTagsStrings {
		key, val, ok := strings.Cut(s, ":")
		if !ok || key == "" || val == "" {
			return errors.Newf("invalid tag filter %q: expected 'key:value'", s)
		}
		o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{Key: key, Value: val})
	}
	if o.InDir == "" {
		o.InDir = "."
	}
	abs, err := filepath.Abs(o.InDir)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", o.InDir)
	}
	o.InDir = abs
	if len(o.Patterns) == 0 {
		o.Patterns = []string{"./..."}
	}
	for i, t := range o.ExcludeTypes {
		o.ExcludeTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}

func (o *Options) typeExcluded(name string) bool {
	name = strings.ToLower(name)
	for _, t := range o.ExcludeTypes {
		if t == name {
			return true
		}
	}
	return false
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option          { return func(o *Options) { o.InDir = d } }
func WithNamespace(ns string) Option     { return func(o *Options) { o.Namespace = ns } }
func WithRootNamespace(ns string) Option { return func(o *Options) { o.RootNamespace = ns } }
func WithLogger(l *zap.Logger) Option    { return func(o *Options) { o.Logger = l } }
func WithPatterns(p ...string) Option    { return func(o *Options) { o.Patterns = p } }
func WithExcludeDeprecated() Option      { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
func WithExcludeByTag(key, val string) Option {
	return func(o *Options) { o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{key, val}) }
}
