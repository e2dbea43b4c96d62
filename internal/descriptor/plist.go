package descriptor

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

const (
	plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
`
	plistFooter = "</plist>\n"
)

// Node is an element of a property list document.
type Node interface {
	encode(e *encoder, depth int)
}

// String is a <string> element.
type String string

// Bool is a <true/> or <false/> element.
type Bool bool

// Comment is an XML comment. It may appear in a Dict or an Array.
type Comment string

// Array is an ordered <array>.
type Array []Node

// Entry is a key/value pair of a Dict. An Entry with a nil Value and a
// non-empty Comment renders as a comment line.
type Entry struct {
	Key     string
	Value   Node
	Comment string
}

// Dict is a <dict> whose entries keep insertion order.
type Dict []Entry

// Add appends a key/value entry and returns the dict.
func (d Dict) Add(key string, value Node) Dict {
	return append(d, Entry{Key: key, Value: value})
}

// Note appends a comment line and returns the dict.
func (d Dict) Note(text string) Dict {
	return append(d, Entry{Comment: text})
}

type encoder struct {
	w   *bufio.Writer
	err error
}

// Encode writes root as a complete plist document.
func Encode(w io.Writer, root Node) error {
	e := &encoder{w: bufio.NewWriter(w)}
	e.raw(plistHeader)
	root.encode(e, 0)
	e.raw(plistFooter)
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *encoder) raw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

func (e *encoder) indent(depth int) {
	e.raw(strings.Repeat("\t", depth))
}

func (e *encoder) text(s string) {
	if e.err != nil {
		return
	}
	e.err = xml.EscapeText(e.w, []byte(s))
}

func (e *encoder) element(depth int, tag, content string) {
	e.indent(depth)
	e.raw("<" + tag + ">")
	e.text(content)
	e.raw("</" + tag + ">\n")
}

func (s String) encode(e *encoder, depth int) {
	e.element(depth, "string", string(s))
}

func (b Bool) encode(e *encoder, depth int) {
	e.indent(depth)
	if b {
		e.raw("<true/>\n")
	} else {
		e.raw("<false/>\n")
	}
}

func (c Comment) encode(e *encoder, depth int) {
	e.indent(depth)
	// "--" is not allowed inside XML comments.
	e.raw("<!-- " + strings.ReplaceAll(string(c), "--", "- -") + " -->\n")
}

func (a Array) encode(e *encoder, depth int) {
	e.indent(depth)
	if len(a) == 0 {
		e.raw("<array/>\n")
		return
	}
	e.raw("<array>\n")
	for _, n := range a {
		n.encode(e, depth+1)
	}
	e.indent(depth)
	e.raw("</array>\n")
}

func (d Dict) encode(e *encoder, depth int) {
	e.indent(depth)
	if len(d) == 0 {
		e.raw("<dict/>\n")
		return
	}
	e.raw("<dict>\n")
	for _, entry := range d {
		if entry.Value == nil {
			Comment(entry.Comment).encode(e, depth+1)
			continue
		}
		e.element(depth+1, "key", entry.Key)
		entry.Value.encode(e, depth+1)
	}
	e.indent(depth)
	e.raw("</dict>\n")
}
