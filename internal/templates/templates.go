// Package templates loads named export presets from YAML files.
//
// A template bundles an output format with generator options so a user can
// run "ruffctl export --template strict-ci" instead of repeating flags.
// Built-in templates cover the common cases; user files in the templates
// directory extend or shadow them.
package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Template is one named export preset.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Format      string `yaml:"format"`
	// IncludeComments defaults to true when omitted in the file.
	IncludeComments *bool `yaml:"include_comments"`
	SortIgnored     bool  `yaml:"sort_ignored"`
}

// templateFile is the on-disk document shape.
type templateFile struct {
	Templates []Template `yaml:"templates"`
}

// Loader handles loading templates from files.
type Loader struct {
	dir string
}

// NewLoader creates a template loader. dir may be empty to use built-ins
// only.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// builtins returns the built-in templates.
func builtins() []Template {
	yes := true
	no := false
	return []Template{
		{
			Name:            "default",
			Description:     "TOML with reasons as comments",
			Format:          "toml",
			IncludeComments: &yes,
		},
		{
			Name:            "sorted",
			Description:     "TOML with the ignore list sorted by code",
			Format:          "toml",
			IncludeComments: &yes,
			SortIgnored:     true,
		},
		{
			Name:            "plain-json",
			Description:     "JSON without reason annotations",
			Format:          "json",
			IncludeComments: &no,
		},
	}
}

// Load returns all templates: built-ins first, then user files. A user
// template with a built-in's name shadows it.
func (l *Loader) Load() ([]Template, error) {
	byName := map[string]int{}
	all := builtins()
	for i, t := range all {
		byName[t.Name] = i
	}

	if l.dir == "" {
		return all, nil
	}

	custom, err := l.loadFromDir(l.dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading custom templates: %w", err)
	}
	for _, t := range custom {
		if i, ok := byName[t.Name]; ok {
			all[i] = t
			continue
		}
		byName[t.Name] = len(all)
		all = append(all, t)
	}

	return all, nil
}

// Get returns the template with the given name.
func (l *Loader) Get(name string) (*Template, error) {
	all, err := l.Load()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("unknown template: %s", name)
}

func (l *Loader) loadFromDir(dir string) ([]Template, error) {
	var all []Template

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var file templateFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		for _, t := range file.Templates {
			if t.Name == "" {
				return fmt.Errorf("template without name in %s", path)
			}
		}

		all = append(all, file.Templates...)
		return nil
	})

	return all, err
}

// WantsComments resolves the IncludeComments default.
func (t *Template) WantsComments() bool {
	if t.IncludeComments == nil {
		return true
	}
	return *t.IncludeComments
}
