package phonebook

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Wadeahh3/phonebook/internal/contact"
)

// Persistence and batch file layout: comma-separated rows of
// first,last,phone,email,address with no header. Import rows may omit
// the trailing optional columns; the batch delete source carries a
// header row that is always skipped.

// SaveToFile overwrites the persistence file with the current store,
// one 5-column row per contact, in store order. Timestamps are not
// persisted; LoadFromFile fabricates fresh ones.
func (b *Book) SaveToFile() error {
	f, err := os.Create(b.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", b.path, err)
	}

	w := csv.NewWriter(f)
	for _, c := range b.contacts {
		row := []string{c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.Address}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", b.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", b.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", b.path, err)
	}

	b.log.Info("saved contacts", "path", b.path, "count", len(b.contacts))
	b.record("save", fmt.Sprintf("%d contacts to %s", len(b.contacts), b.path))
	return nil
}

// LoadFromFile replaces the store with the persistence file's contents.
// A missing file is not an error; the store starts empty. Rows shorter
// than three fields or carrying an invalid phone are skipped with a
// warning. Loaded contacts get load-time timestamps since the file
// stores none.
func (b *Book) LoadFromFile() error {
	rows, err := readRows(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			b.log.Warn("contacts file not found, starting empty", "path", b.path)
			return nil
		}
		return fmt.Errorf("loading %s: %w", b.path, err)
	}

	b.contacts = nil
	for i, row := range rows {
		if len(row) < 3 {
			b.log.Warn("skipping short row", "path", b.path, "row", i+1)
			continue
		}
		c := contact.New(row[0], row[1], row[2], field(row, 3), field(row, 4))
		if err := b.add(c); err != nil {
			b.log.Warn("skipping row with invalid phone", "path", b.path, "row", i+1, "phone", row[2])
		}
	}

	b.log.Info("loaded contacts", "path", b.path, "count", len(b.contacts))
	return nil
}

// ImportReport summarizes a BatchImport run.
type ImportReport struct {
	Imported int
	// Invalid lists rejected rows as "First Last: phone".
	Invalid []string
}

// BatchImport adds every valid row of the CSV at path to the store.
// Rows have no header and need at least first,last,phone; email and
// address are optional. Rows with an invalid phone are reported, not
// fatal. A missing or unreadable file is an error and the store is
// left untouched.
func (b *Book) BatchImport(path string) (*ImportReport, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}

	report := &ImportReport{}
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		c := contact.New(row[0], row[1], row[2], field(row, 3), field(row, 4))
		if err := b.add(c); err != nil {
			report.Invalid = append(report.Invalid, fmt.Sprintf("%s %s: %s", row[0], row[1], row[2]))
			continue
		}
		report.Imported++
	}

	b.log.Info("imported contacts", "path", path, "imported", report.Imported, "invalid", len(report.Invalid))
	b.record("import", fmt.Sprintf("%d from %s (%d invalid)", report.Imported, path, len(report.Invalid)))
	return report, nil
}

// DeleteReport summarizes a BatchDelete run.
type DeleteReport struct {
	Deleted int
	// NotFound lists pairs that matched nothing as "First Last".
	NotFound []string
}

// BatchDelete removes contacts named by the CSV at path. The first row
// is treated as a header and always skipped. Each remaining row names
// one first,last pair, trimmed and matched case-insensitively; a pair
// may remove several contacts. Pairs that match nothing are reported.
// A missing or unreadable file is an error and the store is left
// untouched.
func (b *Book) BatchDelete(path string) (*DeleteReport, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("reading delete list %s: %w", path, err)
	}

	report := &DeleteReport{}
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		first := strings.TrimSpace(row[0])
		last := strings.TrimSpace(row[1])
		n := b.removeByName(first, last)
		if n == 0 {
			report.NotFound = append(report.NotFound, fmt.Sprintf("%s %s", first, last))
			continue
		}
		report.Deleted += n
	}

	b.log.Info("batch deleted contacts", "path", path, "deleted", report.Deleted, "not_found", len(report.NotFound))
	b.record("batch-delete", fmt.Sprintf("%d via %s (%d not found)", report.Deleted, path, len(report.NotFound)))
	return report, nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
