// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package xlfpack

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicholasgasior/xlfpack/internal/xliff"
)

// Attachment is a file embedded in an envelope.
type Attachment struct {
	Filename string
	Datatype string
	Data     []byte
}

// Entry summarizes one file element of an envelope.
type Entry struct {
	Original       string
	Datatype       string
	SourceLanguage string
	TargetLanguage string
	ToolID         string
	// AttachmentSize is the decoded size of the embedded file, 0 when none.
	AttachmentSize int
}

// Envelope is the content of a built XLIFF.
type Envelope struct {
	Original *Attachment
	Manifest *Attachment
	Entries  []Entry
}

// ReadEnvelope parses the envelope at path and decodes its attachments.
func ReadEnvelope(path string) (*Envelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &XMLError{Op: opParse, Path: path, Err: err}
	}
	doc, err := xliff.Parse(raw)
	if err != nil {
		return nil, &XMLError{Op: opParse, Path: path, Err: err}
	}

	env := &Envelope{}
	for _, e := range doc.Entries() {
		entry := Entry{
			Original:       e.Original,
			Datatype:       e.Datatype,
			SourceLanguage: e.SourceLanguage,
			TargetLanguage: e.TargetLanguage,
			ToolID:         e.ToolID,
		}
		if e.ToolID == ToolID && e.HasPayload {
			data, err := base64.StdEncoding.DecodeString(stripSpace(e.Payload))
			if err != nil {
				return nil, &XMLError{Op: opParse, Path: path, Err: fmt.Errorf("decode %s: %w", e.Original, err)}
			}
			entry.AttachmentSize = len(data)
			att := &Attachment{Filename: e.Original, Datatype: e.Datatype, Data: data}
			switch {
			case e.Original == ManifestName:
				if env.Manifest == nil {
					env.Manifest = att
				}
			case env.Original == nil:
				env.Original = att
			}
		}
		env.Entries = append(env.Entries, entry)
	}
	return env, nil
}

// Unpack writes the original file and the manifest embedded in the
// envelope at path into destDir.
func Unpack(path, destDir string) (*Envelope, error) {
	env, err := ReadEnvelope(path)
	if err != nil {
		return nil, err
	}
	if env.Original == nil {
		return nil, fmt.Errorf("%s: original: %w", path, ErrNoAttachment)
	}
	if env.Manifest == nil {
		return nil, fmt.Errorf("%s: manifest: %w", path, ErrNoAttachment)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", destDir, err)
	}
	for _, att := range []*Attachment{env.Original, env.Manifest} {
		// Names come from the document; keep only the base name.
		target := filepath.Join(destDir, filepath.Base(att.Filename))
		if err := os.WriteFile(target, att.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", target, err)
		}
	}
	return env, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\r', '\n', '\t':
			return -1
		}
		return r
	}, s)
}
