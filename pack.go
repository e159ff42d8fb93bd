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
	"os"
	"path/filepath"
	"strings"
)

// Layout of an extraction kit folder.
const (
	ManifestName = "manifest.rkm"
	OriginalDir  = "original"
	WorkDir      = "work"
)

// Pack references the files produced by the extraction pipeline for one
// document. The builder only reads them.
type Pack struct {
	// XLF is the extracted exchange document.
	XLF string
	// Manifest describes how the original was extracted.
	Manifest string
	// Original is the document before any conversion.
	Original string
	// Folder is the kit folder; the envelope is written next to it.
	Folder string
}

// Validate checks that every path of the pack is set.
func (p *Pack) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: pack is nil", ErrInvalidArgument)
	}
	var missing []string
	if p.XLF == "" {
		missing = append(missing, "xlf")
	}
	if p.Manifest == "" {
		missing = append(missing, "manifest")
	}
	if p.Original == "" {
		missing = append(missing, "original")
	}
	if p.Folder == "" {
		missing = append(missing, "folder")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: pack is missing %s", ErrInvalidArgument, strings.Join(missing, ", "))
	}
	return nil
}

// OutputPath returns where the envelope for p is written: beside the kit
// folder, named after the original file.
func (p *Pack) OutputPath() string {
	parent := filepath.Dir(filepath.Clean(p.Folder))
	return filepath.Join(parent, filepath.Base(p.Original)+".xlf")
}

// LoadPack reads a kit folder laid out as
//
//	<folder>/manifest.rkm
//	<folder>/original/<document>
//	<folder>/work/<document>.xlf
func LoadPack(folder string) (*Pack, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidArgument, folder)
	}

	manifest := filepath.Join(folder, ManifestName)
	if err := requireFile(manifest); err != nil {
		return nil, err
	}

	originals, err := listFiles(filepath.Join(folder, OriginalDir), "")
	if err != nil {
		return nil, err
	}
	if len(originals) != 1 {
		return nil, fmt.Errorf("%w: expected one file in %s, found %d", ErrInvalidArgument, OriginalDir, len(originals))
	}
	original := originals[0]

	xlfs, err := listFiles(filepath.Join(folder, WorkDir), ".xlf")
	if err != nil {
		return nil, err
	}
	xlf := pickXLF(xlfs, filepath.Base(original))
	if xlf == "" {
		return nil, fmt.Errorf("%w: expected one .xlf in %s, found %d", ErrInvalidArgument, WorkDir, len(xlfs))
	}

	return &Pack{
		XLF:      xlf,
		Manifest: manifest,
		Original: original,
		Folder:   folder,
	}, nil
}

func pickXLF(candidates []string, originalName string) string {
	for _, c := range candidates {
		if filepath.Base(c) == originalName+".xlf" {
			return c
		}
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	return ""
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidArgument, path)
	}
	return nil
}

// listFiles returns the regular files of dir, optionally filtered by extension.
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
