package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/xctemplate.schema.json
var schemaBytes []byte

const schemaURL = "xctemplate.schema.json"

var printer = message.NewPrinter(language.English)

var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding manifest schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding manifest schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", err)
	}
	return s, nil
})

// flagNames maps manifest keys to the generate flags they stand in for.
// requires has no flag.
var flagNames = map[string]string{
	"directories":         "--directories",
	"group":               "--group",
	"group_index":         "--group-index",
	"output":              "--output",
	"description":         "--description",
	"identifier":          "--identifier",
	"ancestors":           "--ancestors",
	"concrete":            "--concrete",
	"kind":                "--kind",
	"settings":            "--settings",
	"ignore":              "--ignore-files",
	"extensions":          "--extensions",
	"ignore_dir_suffixes": "--ignore-dir-suffixes",
	"force_dir_suffixes":  "--force-dir-suffixes",
	"include_hidden":      "--include-hidden",
}

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation, located by manifest key.
type ValidationIssue struct {
	Path    string // JSON pointer into the manifest, e.g. "/directories/0"
	Key     string // top-level manifest key at fault, "" for the whole document
	Flag    string // generate flag for Key, "" when there is none
	Keyword string // failing schema keyword, e.g. "minimum"
	Message string
}

// String renders the issue as "key (--flag): message".
func (i ValidationIssue) String() string {
	switch {
	case i.Key == "":
		return i.Message
	case i.Flag == "":
		return i.Key + ": " + i.Message
	default:
		return fmt.Sprintf("%s (%s): %s", i.Key, i.Flag, i.Message)
	}
}

// Validate checks manifest YAML against the embedded schema. The error is
// reserved for undecodable input; schema violations come back as issues.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	// Round-trip through JSON so numbers reach the validator as json.Number.
	encoded, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}

	verr := schema.Validate(inst)
	if verr == nil {
		return &ValidationResult{Valid: true}, nil
	}
	ve, ok := verr.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("validating manifest: %w", verr)
	}

	issues := leafIssues(ve, nil)
	slices.SortStableFunc(issues, func(a, b ValidationIssue) int { return strings.Compare(a.Path, b.Path) })
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: ve.Error()}}
	}
	return &ValidationResult{Issues: issues}, nil
}

// ValidateFile reads and validates the manifest at path.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// leafIssues flattens the error tree into its leaves, dropping the
// combinator errors (oneOf, allOf) that only wrap other failures.
func leafIssues(ve *jsonschema.ValidationError, acc []ValidationIssue) []ValidationIssue {
	for _, cause := range ve.Causes {
		acc = leafIssues(cause, acc)
	}
	if len(ve.Causes) > 0 || ve.ErrorKind == nil {
		return acc
	}

	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return acc
	}
	keyword := kw[len(kw)-1]
	if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" {
		return acc
	}

	issue := ValidationIssue{
		Keyword: keyword,
		Message: ve.ErrorKind.LocalizedString(printer),
	}
	if len(ve.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		issue.Key = ve.InstanceLocation[0]
	}
	// Document-level failures name the offending key in the error kind.
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		if issue.Key == "" && len(k.Missing) > 0 {
			issue.Key = k.Missing[0]
		}
	case *kind.AdditionalProperties:
		if issue.Key == "" && len(k.Properties) > 0 {
			issue.Key = k.Properties[0]
		}
	}
	issue.Flag = flagNames[issue.Key]

	if slices.Contains(acc, issue) {
		return acc
	}
	return append(acc, issue)
}

// jsonCompatible converts decoded YAML into values encoding/json accepts.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = jsonCompatible(item)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return m
	case []any:
		for i, item := range val {
			val[i] = jsonCompatible(item)
		}
		return val
	default:
		return val
	}
}
