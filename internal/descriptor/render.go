package descriptor

import (
	"bytes"
	"fmt"
)

// Tree converts the descriptor into its plist node tree. Optional fields
// that are unset are left out, including Concrete when it is ConcreteUnset.
func (d *Descriptor) Tree() Dict {
	root := Dict{}.Note("Header section")

	if d.Description != nil {
		root = root.Add("Description", String(*d.Description))
	}
	if d.Identifier != "" {
		root = root.Add("Identifier", String(d.Identifier))
	}
	switch d.Concrete {
	case ConcreteTrue:
		root = root.Add("Concrete", Bool(true))
	case ConcreteFalse:
		root = root.Add("Concrete", Bool(false))
	}
	root = root.Add("Kind", String(d.Kind))

	if len(d.Ancestors) > 0 {
		ancestors := make(Array, 0, len(d.Ancestors))
		for _, a := range d.Ancestors {
			ancestors = append(ancestors, String(a))
		}
		root = root.Add("Ancestors", ancestors)
	}

	if len(d.SharedSettings) > 0 {
		shared := Dict{}
		for _, s := range d.SharedSettings {
			shared = shared.Add(s.Key, String(s.Value))
		}
		root = root.Add("Project", Array{Dict{}.Add("SharedSettings", shared)})
	}

	definitions := make(Dict, 0, len(d.Definitions))
	for _, def := range d.Definitions {
		group := make(Array, 0, len(def.GroupPath))
		for _, seg := range def.GroupPath {
			group = append(group, String(seg))
		}
		definitions = definitions.Add(def.Path, Dict{}.
			Add("Group", group).
			Add("Path", String(def.Path)))
	}
	root = root.Note("Definitions section").Add("Definitions", definitions)

	nodes := make(Array, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, String(n))
	}
	return root.Note("Nodes section").Add("Nodes", nodes)
}

// Render serializes the descriptor as a TemplateInfo.plist document.
func Render(d *Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, d.Tree()); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return buf.Bytes(), nil
}
