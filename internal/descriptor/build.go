package descriptor

import "fmt"

// Build assembles a Descriptor from absolute file paths in scan order. Paths
// are made relative to base, normally TemplateBase of the scan roots.
func Build(paths []string, base string, meta Metadata) (*Descriptor, error) {
	settings, err := ParseSharedSettings(meta.Settings)
	if err != nil {
		return nil, err
	}

	concrete, _ := ParseConcrete(meta.Concrete)
	kind := meta.Kind
	if kind == "" {
		kind = DefaultKind
	}

	d := &Descriptor{
		Description:    meta.Description,
		Identifier:     meta.Identifier,
		Concrete:       concrete,
		Kind:           kind,
		Ancestors:      meta.Ancestors,
		SharedSettings: settings,
		Definitions:    make([]Definition, 0, len(paths)),
		Nodes:          make([]string, 0, len(paths)),
	}

	for _, p := range paths {
		rel, err := Relativize(p, base)
		if err != nil {
			return nil, err
		}
		group, ok := GroupOf(rel, meta.Group, meta.GroupIndex)
		d.Definitions = append(d.Definitions, Definition{
			Path:      rel,
			GroupPath: groupPath(rel),
			Group:     group,
			HasGroup:  ok,
		})
		d.Nodes = append(d.Nodes, rel)
	}

	return d, nil
}

// Validate checks that Definitions and Nodes list the same paths in the
// same order.
func (d *Descriptor) Validate() error {
	if len(d.Definitions) != len(d.Nodes) {
		return fmt.Errorf("descriptor has %d definitions but %d nodes", len(d.Definitions), len(d.Nodes))
	}
	for i, def := range d.Definitions {
		if def.Path != d.Nodes[i] {
			return fmt.Errorf("definition %d (%s) does not match node %s", i, def.Path, d.Nodes[i])
		}
	}
	return nil
}
