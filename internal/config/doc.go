// Package config manages user-level defaults stored at ~/.xctgen/config.yaml
// and overridable through XCTGEN_* environment variables. It supplies the
// scan extension sets, the group depth index, and the default template kind
// and output path used when a generate run does not set them.
package config
