package xlfpack

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadEnvelope(t *testing.T) {
	pack := writeKit(t, baseXLF, []byte{0x01, 0x02}, "a.docx", []byte("hello"))
	result, err := Build(pack, "")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	env, err := ReadEnvelope(result.Path)
	if err != nil {
		t.Fatalf("ReadEnvelope error: %v", err)
	}
	if env.Original == nil || env.Original.Filename != "a.docx" || string(env.Original.Data) != "hello" {
		t.Errorf("Original = %+v", env.Original)
	}
	if env.Original != nil && env.Original.Datatype != "x-docx" {
		t.Errorf("Original.Datatype = %q, want x-docx", env.Original.Datatype)
	}
	if env.Manifest == nil || !bytes.Equal(env.Manifest.Data, []byte{0x01, 0x02}) {
		t.Errorf("Manifest = %+v", env.Manifest)
	}
	if len(env.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(env.Entries))
	}
	if env.Entries[0].AttachmentSize != 5 || env.Entries[2].AttachmentSize != 0 {
		t.Errorf("attachment sizes = %d, %d", env.Entries[0].AttachmentSize, env.Entries[2].AttachmentSize)
	}
}

func TestUnpack(t *testing.T) {
	pack := writeKit(t, baseXLF, []byte("manifest"), "report.docx", []byte("converted"))
	result, err := Build(pack, FormatDOC)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "restored")
	if _, err := Unpack(result.Path, dest); err != nil {
		t.Fatalf("Unpack error: %v", err)
	}

	for name, want := range map[string]string{"report.doc": "converted", ManifestName: "manifest"} {
		got, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestUnpackWithoutAttachments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlf")
	if err := os.WriteFile(path, []byte(baseXLF), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(path, t.TempDir()); !errors.Is(err, ErrNoAttachment) {
		t.Errorf("Unpack err = %v, want ErrNoAttachment", err)
	}
}
