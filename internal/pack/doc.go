// Package pack lays out a finished .xctemplate directory: it copies each
// scan root into the template, leaving out ignored paths, and moves the
// rendered TemplateInfo.plist to the template's top level.
package pack
