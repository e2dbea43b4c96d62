// Package generate runs a complete template generation: it validates the
// inputs, scans the roots, builds and renders the descriptor, and packs the
// .xctemplate directory. All configuration errors surface before anything
// is written.
package generate
