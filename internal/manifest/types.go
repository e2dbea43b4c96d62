package manifest

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FileName is the conventional manifest file name.
const FileName = "xctemplate.yaml"

// TemplateManifest mirrors the flags of "xctgen generate".
type TemplateManifest struct {
	Requires          string    `yaml:"requires,omitempty"`
	Directories       []string  `yaml:"directories"`
	Group             string    `yaml:"group,omitempty"`
	GroupIndex        *int      `yaml:"group_index,omitempty"`
	Output            string    `yaml:"output,omitempty"`
	Description       *string   `yaml:"description,omitempty"`
	Identifier        string    `yaml:"identifier,omitempty"`
	Ancestors         []string  `yaml:"ancestors,omitempty"`
	Concrete          Concrete  `yaml:"concrete,omitempty"`
	Kind              string    `yaml:"kind,omitempty"`
	Settings          TokenList `yaml:"settings,omitempty"`
	Ignore            []string  `yaml:"ignore,omitempty"`
	Extensions        *[]string `yaml:"extensions,omitempty"`
	IgnoreDirSuffixes *[]string `yaml:"ignore_dir_suffixes,omitempty"`
	ForceDirSuffixes  *[]string `yaml:"force_dir_suffixes,omitempty"`
	IncludeHidden     bool      `yaml:"include_hidden,omitempty"`
}

// TokenList accepts either a YAML sequence of strings or a single
// space-separated string.
type TokenList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TokenList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = strings.Fields(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*t = items
		return nil
	default:
		return fmt.Errorf("line %d: settings must be a string or a list of strings", node.Line)
	}
}

// Concrete holds the concrete flag as written: "yes", "no", or any other
// string. YAML booleans map to "yes" and "no".
type Concrete string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Concrete) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: concrete must be a scalar", node.Line)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		if b {
			*c = "yes"
		} else {
			*c = "no"
		}
		return nil
	}
	*c = Concrete(node.Value)
	return nil
}
