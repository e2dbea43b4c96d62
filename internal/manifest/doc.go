// Package manifest handles xctemplate.yaml, the optional file that records
// every generate setting for a template so a run can be repeated without a
// long command line. Manifests are validated against an embedded JSON Schema
// and may pin the xctgen versions they work with.
package manifest
