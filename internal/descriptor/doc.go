// Package descriptor builds the TemplateInfo.plist document of an Xcode
// project template. A Descriptor is assembled from the scanned file set and
// the template metadata, converted to a tree of plist nodes, and rendered to
// text in a single pass.
//
// Every file appears twice in the document: once as a Definitions entry
// (its Xcode group path and relative path) and once in the Nodes array. Both
// views are derived from the same ordered file list.
package descriptor
