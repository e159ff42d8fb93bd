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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a pack is nil or incomplete.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEncoding is wrapped by every EncodingError.
	ErrEncoding = errors.New("encoding failed")
	// ErrXML is wrapped by every XMLError.
	ErrXML = errors.New("xml processing failed")
	// ErrOutputMissing is wrapped by every OutputError.
	ErrOutputMissing = errors.New("output file missing")
	// ErrNoAttachment is returned when an envelope lacks an embedded file.
	ErrNoAttachment = errors.New("no embedded attachment")
	// ErrFileTooLarge is returned when a side file exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")
)

// UnsupportedFormatError is returned when a filename's extension maps to no known format.
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	parts := []string{"unsupported format"}
	if e.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension=%q", e.Extension))
	}
	if e.Filename != "" {
		parts = append(parts, fmt.Sprintf("file=%q", e.Filename))
	}
	return strings.Join(parts, " ")
}

// EncodingError is returned when a side file cannot be read for embedding.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() []error {
	return []error{ErrEncoding, e.Err}
}

// XMLError is returned when the base document cannot be parsed or the
// result cannot be serialized. Op is "parse" or "serialize".
type XMLError struct {
	Op   string
	Path string
	Err  error
}

func (e *XMLError) Error() string {
	return fmt.Sprintf("xliff %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *XMLError) Unwrap() []error {
	return []error{ErrXML, e.Err}
}

// OutputError is returned when the written document is absent afterwards.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("output %s could not be created", e.Path)
	}
	return fmt.Sprintf("output %s could not be created: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrOutputMissing}
	}
	return []error{ErrOutputMissing, e.Err}
}

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsParseFailure reports whether err is an XMLError raised while reading the base document.
func IsParseFailure(err error) bool {
	var target *XMLError
	return errors.As(err, &target) && target.Op == opParse
}
