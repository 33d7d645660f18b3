package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLookupByClientExample(t *testing.T) {
	d := Default()

	e, ok := d.LookupByClient(0x8015, 0x06, false)
	if !ok {
		t.Fatal("expected a match")
	}

	want := Entry{"iPhone10,3", "d22ap", 0x06, 0x8015, "iPhone X (Global)"}
	if e != want {
		t.Fatalf("got %+v, want %+v", e, want)
	}
}

func TestLookupByClientPortDFURepack(t *testing.T) {
	d := Default()

	// bdid=0x03150601 packs cpid=0x1506, bdid=0x03:
	// cpid_match=(bdid>>8)&0xFFFF=0x1506, bdid_match=(bdid>>24)&0xFF=0x03.
	e, ok := d.LookupByClient(0, 0x03150601, true)
	if !ok {
		t.Fatal("expected a Port-DFU match")
	}

	if e.ChipID != 0x1506 || e.BoardID != 0x03 {
		t.Fatalf("got chip_id=0x%x board_id=0x%x, want chip_id=0x1506 board_id=0x03",
			e.ChipID, e.BoardID)
	}
}

func TestLookupByClientFirstMatchWins(t *testing.T) {
	d := Default()

	// iPhone8,1 has two rows that share board id 0x04 and differ in
	// chip id (0x8000 and 0x8003); (0x8000, 0x04) selects n71ap.
	e1, ok1 := d.LookupByClient(0x8000, 0x04, false)
	if !ok1 || e1.HardwareModel != "n71ap" {
		t.Fatalf("expected first matching row n71ap, got %+v (ok=%v)", e1, ok1)
	}

	// When two rows carry the same (chip_id, board_id), the earlier row
	// in table order is returned.
	dup := &DB{entries: []Entry{
		{"iPhone8,1", "n71ap", 0x04, 0x8000, "first"},
		{"iPhone8,1", "n71xap", 0x04, 0x8000, "second"},
	}}
	e2, ok2 := dup.LookupByClient(0x8000, 0x04, false)
	if !ok2 || e2.DisplayName != "first" {
		t.Fatalf("expected the earlier of two matching rows, got %+v (ok=%v)", e2, ok2)
	}
}

func TestLookupByClientNotFound(t *testing.T) {
	d := Default()
	if _, ok := d.LookupByClient(0xDEAD, 0xBEEF, false); ok {
		t.Fatal("expected no match for nonsense identifiers")
	}
}

func TestLookupByProductType(t *testing.T) {
	d := Default()
	e, ok := d.LookupByProductType("iPhone10,3")
	if !ok || e.HardwareModel != "d22ap" {
		t.Fatalf("unexpected result: %+v (ok=%v)", e, ok)
	}
}

func TestLookupByHardwareModelCaseInsensitive(t *testing.T) {
	d := Default()
	e, ok := d.LookupByHardwareModel("D22AP")
	if !ok || e.ProductType != "iPhone10,3" {
		t.Fatalf("unexpected result: %+v (ok=%v)", e, ok)
	}
}

func TestDumpFormat(t *testing.T) {
	d := &DB{entries: []Entry{{"iPhone10,3", "d22ap", 0x06, 0x8015, "iPhone X (Global)"}}}

	var sb strings.Builder
	d.Dump(&sb)

	want := "iPhone10,3 d22ap 0x06 0x8015 iPhone X (Global)\n"
	if sb.String() != want {
		t.Fatalf("got %q, want %q", sb.String(), want)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.conf")
	content := "[d331ap]\ncpid = 0x8020\nbdid = 0x02\nproduct-type = iPhone11,4\ndisplay-name = iPhone XS Max\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	base := &DB{}
	merged, err := base.LoadOverlay(path)
	if err != nil {
		t.Fatal(err)
	}

	e, ok := merged.LookupByClient(0x8020, 0x02, false)
	if !ok || e.ProductType != "iPhone11,4" {
		t.Fatalf("overlay row not found: %+v (ok=%v)", e, ok)
	}

	// Original db is untouched.
	if len(base.entries) != 0 {
		t.Fatalf("expected base db to remain empty, got %d entries", len(base.entries))
	}
}
