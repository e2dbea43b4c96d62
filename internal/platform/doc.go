// Package platform papers over filesystem differences when scanning and
// packing a template: symlinked directories that loop back on themselves,
// and hosts without Unix permission bits.
package platform
