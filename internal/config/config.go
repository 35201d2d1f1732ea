// Package config holds the settings shared by every command.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/cmmoran/dtogen/pkg/generator/blazor"
	"github.com/cmmoran/dtogen/pkg/writer"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database" json:"database"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
	Manifest  ManifestConfig  `mapstructure:"manifest" yaml:"manifest" json:"manifest"`
	Log       LogConfig       `mapstructure:"log" yaml:"log" json:"log"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator" json:"generator"`
	Version   string          `mapstructure:"version" yaml:"version" json:"version"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

type OutputConfig struct {
	Root   string            `mapstructure:"root" yaml:"root" json:"root"`
	Layers map[string]string `mapstructure:"layers" yaml:"layers" json:"layers"`
}

type ManifestConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json" json:"json"`
}

type GeneratorConfig struct {
	ListForm   blazor.ListFormOptions   `mapstructure:"list_form" yaml:"list_form" json:"list_form"`
	DetailForm blazor.DetailFormOptions `mapstructure:"detail_form" yaml:"detail_form" json:"detail_form"`
	GoPackage  string                   `mapstructure:"go_package" yaml:"go_package" json:"go_package"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	list := blazor.DefaultListFormOptions()
	detail := blazor.DefaultDetailFormOptions()

	v.SetDefault("database.path", ".dtogen/dtogen.db")
	v.SetDefault("output.root", ".")
	for layer, dir := range writer.DefaultLayers() {
		v.SetDefault("output.layers."+string(layer), dir)
	}
	v.SetDefault("manifest.path", ".dtogen/manifest.yaml")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("generator.list_form.include_create_button", list.IncludeCreateButton)
	v.SetDefault("generator.list_form.include_delete_button", list.IncludeDeleteButton)
	v.SetDefault("generator.list_form.enable_multi_select", list.EnableMultiSelect)
	v.SetDefault("generator.detail_form.save_command_name", detail.SaveCommandName)
	v.SetDefault("generator.go_package", "")
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is required")
	}
	if strings.TrimSpace(c.Output.Root) == "" {
		return errors.New("output.root is required")
	}
	for layer, dir := range c.Output.Layers {
		if strings.TrimSpace(dir) == "" {
			return errors.Newf("output.layers.%s has no folder", layer)
		}
	}
	return nil
}

// Layers converts the configured layer folders for the writer.
func (c *Config) Layers() map[writer.Layer]string {
	out := make(map[writer.Layer]string, len(c.Output.Layers))
	for k, v := range c.Output.Layers {
		out[writer.Layer(k)] = v
	}
	return out
}
