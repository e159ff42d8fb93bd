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

// Package xlfpack builds self-contained XLIFF envelopes. An envelope is the
// extracted XLIFF of a document with the original document and its
// extraction manifest embedded as base64 attachments in two extra file
// elements, so the original can be rebuilt from the translated package.
//
// The envelope looks like:
//
//	<file tool-id="matecat-converter" original="report.doc" datatype="x-doc"
//	      source-language="en" target-language="it">
//	  <header><reference><internal-file form="base64">...</internal-file></reference></header>
//	  <body/>
//	</file>
//	<file tool-id="matecat-converter" original="manifest.rkm" datatype="x-rkm" ...>...</file>
//	...the extracted file elements, unchanged...
package xlfpack

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/dustin/go-humanize"

	"github.com/nicholasgasior/xlfpack/internal/xliff"
)

// ToolID marks the file elements added by this package.
const ToolID = "matecat-converter"

const (
	opParse     = "parse"
	opSerialize = "serialize"
)

// Builder creates envelopes. It holds configuration only, so one Builder
// may serve concurrent builds of different packs.
type Builder struct {
	logger      *slog.Logger
	maxFileSize int64
}

// New creates a Builder with the given options.
func New(opts ...Option) *Builder {
	b := &Builder{
		logger:      slog.Default(),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result describes a written envelope.
type Result struct {
	// Path of the written envelope.
	Path string
	// Filename and Format declared for the embedded original.
	Filename string
	Format   Format
	// Languages copied from the first extracted file element.
	SourceLanguage string
	TargetLanguage string
	// Entries is the number of file elements in the envelope.
	Entries int
}

// Build creates the envelope for pack with a default Builder.
func Build(pack *Pack, originalFormat Format, opts ...Option) (*Result, error) {
	return New(opts...).Build(pack, originalFormat)
}

// Build embeds the original file and the manifest of pack into a copy of
// its XLIFF and writes it to pack.OutputPath().
//
// originalFormat is the format of the original before any conversion the
// pipeline applied; empty means the original's current format. When it
// differs, the embedded file is declared with the hint's extension.
//
// Concurrent builds whose packs share an output path race on the file.
func (b *Builder) Build(pack *Pack, originalFormat Format) (*Result, error) {
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	if originalFormat != "" && !originalFormat.Known() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, &UnsupportedFormatError{Extension: string(originalFormat)})
	}

	outputPath := pack.OutputPath()
	filename := filepath.Base(pack.Original)
	logger := b.logger.With("original", filename, "output", outputPath)

	encodedManifest, err := b.encodeFile(pack.Manifest)
	if err != nil {
		return nil, err
	}
	encodedOriginal, err := b.encodeFile(pack.Original)
	if err != nil {
		return nil, err
	}

	effectiveName, effectiveFormat, err := resolveOriginal(pack.Original, originalFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	raw, err := os.ReadFile(pack.XLF)
	if err != nil {
		return nil, &XMLError{Op: opParse, Path: pack.XLF, Err: err}
	}
	doc, err := xliff.Parse(raw)
	if err != nil {
		return nil, &XMLError{Op: opParse, Path: pack.XLF, Err: err}
	}

	sourceLanguage, targetLanguage, ok := doc.Languages()
	if !ok {
		logger.Warn("base xliff has no file element, languages left empty", "xlf", pack.XLF)
	}

	manifestEntry := fileEntry(sourceLanguage, targetLanguage, ManifestName, FormatRKM, encodedManifest)
	originalEntry := fileEntry(sourceLanguage, targetLanguage, effectiveName, effectiveFormat, encodedOriginal)

	// Final order: original, manifest, extracted entries.
	doc.Prepend(manifestEntry)
	doc.Prepend(originalEntry)

	out, err := doc.Bytes()
	if err != nil {
		return nil, &XMLError{Op: opSerialize, Path: outputPath, Err: err}
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return nil, &XMLError{Op: opSerialize, Path: outputPath, Err: err}
	}
	if _, err := os.Stat(outputPath); err != nil {
		return nil, &OutputError{Path: outputPath, Err: err}
	}

	result := &Result{
		Path:           outputPath,
		Filename:       effectiveName,
		Format:         effectiveFormat,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Entries:        len(doc.Entries()),
	}
	logger.Info("envelope written",
		"embedded_as", effectiveName,
		"datatype", "x-"+string(effectiveFormat),
		"entries", result.Entries,
		"size", humanize.Bytes(uint64(len(out))),
	)
	return result, nil
}

// encodeFile returns the base64 form of the file at path.
func (b *Builder) encodeFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &EncodingError{Path: path, Err: err}
	}
	if info.Size() > b.maxFileSize {
		return "", &EncodingError{
			Path: path,
			Err:  fmt.Errorf("%w: %s (max %s)", ErrFileTooLarge, humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(b.maxFileSize))),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &EncodingError{Path: path, Err: err}
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func fileEntry(sourceLanguage, targetLanguage, name string, format Format, payload string) *etree.Element {
	return xliff.NewFileEntry(xliff.FileEntry{
		ToolID:         ToolID,
		Original:       name,
		Datatype:       "x-" + string(format),
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Payload:        payload,
	})
}
