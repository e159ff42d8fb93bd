package xliff

import (
	"strings"

	"github.com/beevik/etree"
)

// FileEntry describes an administrative file element carrying one
// embedded attachment.
type FileEntry struct {
	ToolID         string
	Original       string
	Datatype       string
	SourceLanguage string
	TargetLanguage string
	// Payload is the base64 text placed inside internal-file.
	Payload string
}

// NewFileEntry builds the element for fe. The empty body is required by
// the schema even though the entry holds no translatable units.
func NewFileEntry(fe FileEntry) *etree.Element {
	file := etree.NewElement(TagFile)
	file.CreateAttr(AttrToolID, fe.ToolID)
	file.CreateAttr(AttrOriginal, fe.Original)
	file.CreateAttr(AttrDatatype, fe.Datatype)
	file.CreateAttr(AttrSourceLanguage, fe.SourceLanguage)
	file.CreateAttr(AttrTargetLanguage, fe.TargetLanguage)

	internal := file.CreateElement(TagHeader).CreateElement(TagReference).CreateElement(TagInternalFile)
	internal.CreateAttr(AttrForm, FormBase64)
	internal.SetText(fe.Payload)

	file.CreateElement(TagBody)
	return file
}

// Entry is a root-level file element as found in a parsed document.
type Entry struct {
	ToolID         string
	Original       string
	Datatype       string
	SourceLanguage string
	TargetLanguage string
	// Payload is the base64 attachment text, empty when HasPayload is false.
	Payload    string
	HasPayload bool
}

// Entries returns the root-level file elements in document order.
func (d *Document) Entries() []Entry {
	var entries []Entry
	for _, child := range d.doc.Root().ChildElements() {
		if child.Space != "" || child.Tag != TagFile {
			continue
		}
		entry := Entry{
			ToolID:         child.SelectAttrValue(AttrToolID, ""),
			Original:       child.SelectAttrValue(AttrOriginal, ""),
			Datatype:       child.SelectAttrValue(AttrDatatype, ""),
			SourceLanguage: child.SelectAttrValue(AttrSourceLanguage, ""),
			TargetLanguage: child.SelectAttrValue(AttrTargetLanguage, ""),
		}
		if internal := child.FindElement(TagHeader + "/" + TagReference + "/" + TagInternalFile); internal != nil &&
			internal.SelectAttrValue(AttrForm, "") == FormBase64 {
			entry.Payload = strings.TrimSpace(internal.Text())
			entry.HasPayload = true
		}
		entries = append(entries, entry)
	}
	return entries
}
