// Package db implements the read-only device database: the fixed
// table mapping (chip_id, board_id) pairs to product type, hardware
// model and display name, plus lookups keyed by client identity,
// product type and hardware model, and an optional on-disk overlay.
package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/libimobiledevice/libirecovery/internal/ini"
)

// Entry is one immutable row of the device database.
type Entry struct {
	ProductType   string
	HardwareModel string
	BoardID       uint32
	ChipID        uint32
	DisplayName   string
}

// DB is a read-only, lock-free (after construction) device table. The
// zero value is an empty database; use Default() for the built-in table.
type DB struct {
	entries []Entry
}

// Default returns the built-in device database.
func Default() *DB {
	return &DB{entries: append([]Entry(nil), builtinEntries...)}
}

// LoadOverlay merges additional rows from an .ini-style file into a
// copy of db, consulted after the built-in table. Overlay sections
// carry the hardware model name; "cpid" and "product-type" keys are
// required, "bdid" is 0 when absent, and "display-name" is optional
// (defaults to product-type).
func (db *DB) LoadOverlay(path string) (*DB, error) {
	merged := &DB{entries: append([]Entry(nil), db.entries...)}

	var cur *Entry
	finish := func() error {
		if cur == nil {
			return nil
		}
		if cur.ProductType == "" || cur.ChipID == 0 {
			return fmt.Errorf("overlay section %q: missing cpid or product-type", cur.HardwareModel)
		}
		if cur.DisplayName == "" {
			cur.DisplayName = cur.ProductType
		}
		merged.entries = append(merged.entries, *cur)
		cur = nil
		return nil
	}

	err := ini.ReadAll(path, func(rec *ini.Record) error {
		if rec.Type == ini.RecordSection {
			if err := finish(); err != nil {
				return err
			}
			cur = &Entry{HardwareModel: rec.Section}
			return nil
		}

		if cur == nil {
			return fmt.Errorf("%s:%d: key outside of any section", rec.File, rec.Line)
		}

		switch rec.Key {
		case "cpid":
			var v uint32
			if _, err := fmt.Sscanf(rec.Value, "0x%x", &v); err != nil {
				if _, err := fmt.Sscanf(rec.Value, "%d", &v); err != nil {
					return fmt.Errorf("%s:%d: invalid cpid %q", rec.File, rec.Line, rec.Value)
				}
			}
			cur.ChipID = v
		case "bdid":
			var v uint32
			if _, err := fmt.Sscanf(rec.Value, "0x%x", &v); err != nil {
				if _, err := fmt.Sscanf(rec.Value, "%d", &v); err != nil {
					return fmt.Errorf("%s:%d: invalid bdid %q", rec.File, rec.Line, rec.Value)
				}
			}
			cur.BoardID = v
		case "product-type":
			cur.ProductType = rec.Value
		case "display-name":
			cur.DisplayName = rec.Value
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := finish(); err != nil {
		return nil, err
	}

	return merged, nil
}

// LookupByClient returns the first row whose chip_id and board_id
// match cpid and bdid. In Port-DFU mode (isPortDFU true), bdid is the
// packed 32-bit value and is repacked before matching:
// cpid_match = (bdid>>8)&0xFFFF, bdid_match = (bdid>>24)&0xFF.
func (db *DB) LookupByClient(cpid, bdid uint32, isPortDFU bool) (Entry, bool) {
	matchCPID, matchBDID := cpid, bdid
	if isPortDFU {
		matchCPID = (bdid >> 8) & 0xFFFF
		matchBDID = (bdid >> 24) & 0xFF
	}

	for _, e := range db.entries {
		if e.ChipID == matchCPID && e.BoardID == matchBDID {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupByProductType returns the row with an exact product-type match.
func (db *DB) LookupByProductType(productType string) (Entry, bool) {
	for _, e := range db.entries {
		if e.ProductType == productType {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupByHardwareModel returns the row with a case-insensitive
// hardware-model match.
func (db *DB) LookupByHardwareModel(hardwareModel string) (Entry, bool) {
	for _, e := range db.entries {
		if strings.EqualFold(e.HardwareModel, hardwareModel) {
			return e, true
		}
	}
	return Entry{}, false
}

// Dump writes every row in "product_type hardware_model 0x%02x 0x%04x
// display_name" format, for tooling that dumps the database.
func (db *DB) Dump(w io.Writer) {
	for _, e := range db.entries {
		fmt.Fprintf(w, "%s %s 0x%02x 0x%04x %s\n",
			e.ProductType, e.HardwareModel, e.BoardID, e.ChipID, e.DisplayName)
	}
}

// Entries returns a read-only snapshot of every row, in table order.
func (db *DB) Entries() []Entry {
	return append([]Entry(nil), db.entries...)
}
