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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is the canonical identifier of a document type, equal to its
// lowercase file extension without the dot.
type Format string

const (
	// Word processing
	FormatDOC  Format = "doc"
	FormatDOT  Format = "dot"
	FormatDOCX Format = "docx"
	FormatDOTX Format = "dotx"
	FormatDOCM Format = "docm"
	FormatDOTM Format = "dotm"
	FormatRTF  Format = "rtf"
	FormatODT  Format = "odt"
	FormatOTT  Format = "ott"
	FormatSXW  Format = "sxw"
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"

	// Spreadsheets
	FormatXLS  Format = "xls"
	FormatXLT  Format = "xlt"
	FormatXLSX Format = "xlsx"
	FormatXLSM Format = "xlsm"
	FormatXLTX Format = "xltx"
	FormatODS  Format = "ods"
	FormatOTS  Format = "ots"
	FormatSXC  Format = "sxc"
	FormatCSV  Format = "csv"

	// Presentations
	FormatPPT  Format = "ppt"
	FormatPPS  Format = "pps"
	FormatPOT  Format = "pot"
	FormatPPTX Format = "pptx"
	FormatPPTM Format = "pptm"
	FormatPPSX Format = "ppsx"
	FormatPOTX Format = "potx"
	FormatODP  Format = "odp"
	FormatOTP  Format = "otp"
	FormatSXI  Format = "sxi"

	// Markup and localization
	FormatHTML       Format = "html"
	FormatHTM        Format = "htm"
	FormatXHTML      Format = "xhtml"
	FormatXML        Format = "xml"
	FormatJSON       Format = "json"
	FormatMD         Format = "md"
	FormatPO         Format = "po"
	FormatProperties Format = "properties"
	FormatResx       Format = "resx"
	FormatStrings    Format = "strings"
	FormatIDML       Format = "idml"
	FormatMIF        Format = "mif"
	FormatINX        Format = "inx"
	FormatTXML       Format = "txml"
	FormatTTX        Format = "ttx"
	FormatXLF        Format = "xlf"
	FormatXLIFF      Format = "xliff"
	FormatSDLXLIFF   Format = "sdlxliff"
	FormatTMX        Format = "tmx"

	// FormatRKM is the Okapi extraction manifest.
	FormatRKM Format = "rkm"
)

var knownFormats = map[Format]struct{}{}

func init() {
	for _, f := range []Format{
		FormatDOC, FormatDOT, FormatDOCX, FormatDOTX, FormatDOCM, FormatDOTM, FormatRTF,
		FormatODT, FormatOTT, FormatSXW, FormatPDF, FormatTXT,
		FormatXLS, FormatXLT, FormatXLSX, FormatXLSM, FormatXLTX, FormatODS, FormatOTS, FormatSXC, FormatCSV,
		FormatPPT, FormatPPS, FormatPOT, FormatPPTX, FormatPPTM, FormatPPSX, FormatPOTX, FormatODP, FormatOTP, FormatSXI,
		FormatHTML, FormatHTM, FormatXHTML, FormatXML, FormatJSON, FormatMD, FormatPO, FormatProperties,
		FormatResx, FormatStrings, FormatIDML, FormatMIF, FormatINX, FormatTXML, FormatTTX,
		FormatXLF, FormatXLIFF, FormatSDLXLIFF, FormatTMX, FormatRKM,
	} {
		knownFormats[f] = struct{}{}
	}
}

func (f Format) String() string {
	return string(f)
}

// Known reports whether f is one of the formats this package recognizes.
func (f Format) Known() bool {
	_, ok := knownFormats[f]
	return ok
}

// ParseFormat normalizes a user supplied format name such as "DOC" or ".doc".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	if !f.Known() {
		return "", &UnsupportedFormatError{Extension: s}
	}
	return f, nil
}

// DetectFormat returns the format implied by filename's extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f := Format(strings.TrimPrefix(ext, "."))
	if f == "" || !f.Known() {
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
	return f, nil
}

// DetectFileFormat detects the format of the file at path. The extension
// wins; when it is missing or unknown the content is sniffed.
func DetectFileFormat(path string) (Format, error) {
	f, err := DetectFormat(path)
	if err == nil {
		return f, nil
	}

	mtype, sniffErr := mimetype.DetectFile(path)
	if sniffErr != nil {
		return "", fmt.Errorf("sniff %s: %w", filepath.Base(path), sniffErr)
	}
	for m := mtype; m != nil; m = m.Parent() {
		if sniffed, ok := formatFromExtension(m.Extension()); ok {
			return sniffed, nil
		}
	}
	return "", err
}

func formatFromExtension(ext string) (Format, bool) {
	f := Format(strings.TrimPrefix(strings.ToLower(ext), "."))
	return f, f != "" && f.Known()
}

// resolveName returns the filename and format to declare for an embedded
// file. A hint that differs from the detected format renames the file to
// carry the hint's extension; the returned format always follows the
// returned filename.
func resolveName(filename string, hint Format) (string, Format, error) {
	detected, err := DetectFormat(filename)
	if hint == "" {
		return filename, detected, err
	}
	if err == nil && detected == hint {
		return filename, detected, nil
	}

	base := filepath.Base(filename)
	renamed := strings.TrimSuffix(base, filepath.Ext(base)) + "." + string(hint)
	format, err := DetectFormat(renamed)
	if err != nil {
		return "", "", err
	}
	return renamed, format, nil
}

// resolveOriginal resolves the declared name and format of the original
// file at path. A hint goes through resolveName. Without one, a name whose
// extension is unknown is kept as is and its format is sniffed from the
// content.
func resolveOriginal(path string, hint Format) (string, Format, error) {
	filename := filepath.Base(path)
	if hint != "" {
		return resolveName(filename, hint)
	}
	if format, err := DetectFormat(filename); err == nil {
		return filename, format, nil
	}
	format, err := DetectFileFormat(path)
	if err != nil {
		return "", "", err
	}
	return filename, format, nil
}
