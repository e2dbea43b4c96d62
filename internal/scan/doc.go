// Package scan walks template source directories and collects the files an
// Xcode project template ships. Directories with a forced suffix (for example
// .framework bundles) switch the walk into include-all mode for their whole
// subtree; directories with an ignored suffix (.xcodeproj) are skipped.
// Symlinks are followed, except a directory link that leads back to one of
// its own ancestors.
package scan
