package ini

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devices.conf")

	content := "; overlay device database\n" +
		"[d331ap]\n" +
		"cpid = 0x8030\n" +
		"bdid = 0x06\n" +
		"product-type = iPhone12,1\n" +
		"\n" +
		"# comment line\n" +
		"[d331pap]\n" +
		"cpid = 0x8030\n" +
		"bdid = 0x0a\n" +
		"product-type = iPhone12,3\n"

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var sections []string
	var kvs []Record

	err := ReadAll(path, func(rec *Record) error {
		if rec.Type == RecordSection {
			sections = append(sections, rec.Section)
		} else {
			kvs = append(kvs, *rec)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(sections) != 2 || sections[0] != "d331ap" || sections[1] != "d331pap" {
		t.Fatalf("unexpected sections: %v", sections)
	}
	if len(kvs) != 6 {
		t.Fatalf("expected 6 key/value records, got %d", len(kvs))
	}
	if kvs[0].Key != "cpid" || kvs[0].Value != "0x8030" {
		t.Fatalf("unexpected first record: %+v", kvs[0])
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.conf"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected IsNotExist error, got %v", err)
	}
}

func TestNextReturnsEOF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.conf")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = f.Next()
	if err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
