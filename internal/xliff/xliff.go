// Package xliff holds the XLIFF 1.2 document tree manipulated when a
// translation package is enveloped: parsing with whitespace normalization,
// reading package-wide languages, inserting file entries and serializing.
package xliff

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Element and attribute names from the XLIFF 1.2 vocabulary.
const (
	TagFile         = "file"
	TagHeader       = "header"
	TagReference    = "reference"
	TagInternalFile = "internal-file"
	TagBody         = "body"

	AttrToolID         = "tool-id"
	AttrOriginal       = "original"
	AttrDatatype       = "datatype"
	AttrSourceLanguage = "source-language"
	AttrTargetLanguage = "target-language"
	AttrForm           = "form"

	FormBase64 = "base64"
)

const declaration = `version="1.0" encoding="UTF-8"`

// ErrNoRoot is returned when the input holds no root element.
var ErrNoRoot = errors.New("document has no root element")

// Document is a parsed exchange document.
type Document struct {
	doc *etree.Document
}

// Normalize removes every line break and tab from raw so that no
// incidental whitespace text node survives between structural elements,
// whatever the line ending convention.
func Normalize(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		switch b {
		case '\n', '\r', '\t':
			continue
		}
		out = append(out, b)
	}
	return out
}

// Parse decodes raw to UTF-8, normalizes it and builds the document tree.
func Parse(raw []byte) (*Document, error) {
	text, err := decodeUTF8(raw)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(Normalize(text)); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return &Document{doc: doc}, nil
}

// Root returns the document element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Languages returns the source and target language of the first file
// element in document order. ok is false when the document has none.
func (d *Document) Languages() (source, target string, ok bool) {
	file := firstFile(d.doc.Root())
	if file == nil {
		return "", "", false
	}
	return file.SelectAttrValue(AttrSourceLanguage, ""), file.SelectAttrValue(AttrTargetLanguage, ""), true
}

func firstFile(e *etree.Element) *etree.Element {
	for _, child := range e.ChildElements() {
		if child.Space == "" && child.Tag == TagFile {
			return child
		}
		if found := firstFile(child); found != nil {
			return found
		}
	}
	return nil
}

// Prepend inserts entry before the root's current first child.
func (d *Document) Prepend(entry *etree.Element) {
	d.doc.Root().InsertChildAt(0, entry)
}

// Bytes serializes the document with a UTF-8 declaration.
func (d *Document) Bytes() ([]byte, error) {
	d.setDeclaration()
	var buf bytes.Buffer
	if _, err := d.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) setDeclaration() {
	for _, tok := range d.doc.Child {
		if p, ok := tok.(*etree.ProcInst); ok && p.Target == "xml" {
			p.Inst = declaration
			return
		}
	}
	d.doc.InsertChildAt(0, etree.NewProcInst("xml", declaration))
}
