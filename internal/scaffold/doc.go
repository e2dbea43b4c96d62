// Package scaffold writes a starter xctemplate.yaml for "xctgen init",
// pre-filled from the directories found next to it and from the user's
// configured defaults.
package scaffold
