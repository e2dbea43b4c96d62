package descriptor

// DefaultKind is the template kind for Xcode 4 project templates.
const DefaultKind = "Xcode.Xcode3.ProjectTemplateUnitKind"

// FileName is the fixed name of the rendered descriptor.
const FileName = "TemplateInfo.plist"

// Concrete is the tri-state value of the template's Concrete flag.
type Concrete int

const (
	ConcreteUnset Concrete = iota
	ConcreteTrue
	ConcreteFalse
)

// Setting is one SharedSettings build-setting entry.
type Setting struct {
	Key   string
	Value string
}

// Definition describes one template file in the Definitions section.
type Definition struct {
	Path      string   // slash-separated path relative to the template root
	GroupPath []string // all but the final segment of Path
	Group     string   // resolved group name, "" when HasGroup is false
	HasGroup  bool
}

// Descriptor is the in-memory form of TemplateInfo.plist.
type Descriptor struct {
	Description    *string
	Identifier     string
	Concrete       Concrete
	Kind           string
	Ancestors      []string
	SharedSettings []Setting
	Definitions    []Definition
	Nodes          []string
}

// Metadata holds the template-level values supplied by the caller.
type Metadata struct {
	Description *string
	Identifier  string
	// Concrete is matched case-insensitively against "yes" and "no".
	Concrete  string
	Kind      string
	Ancestors []string
	// Settings is the flat key/value token list of the shared build settings.
	Settings   []string
	Group      string // fixed group name; empty derives groups from paths
	GroupIndex int
}
