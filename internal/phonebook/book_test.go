package phonebook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Wadeahh3/phonebook/internal/contact"
)

type mockJournal struct {
	events []string
	err    error
}

func (m *mockJournal) Record(op, detail string) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, op)
	return nil
}

func newTestBook(t *testing.T) *Book {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "contacts.csv"), nil)
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"(123) 456-7890", true},
		{"(000) 000-0000", true},
		{"123-456-7890", false},
		{"(123) 456-789", false},
		{"(123) 456-78901", false},
		{"(123)456-7890", false},
		{"x(123) 456-7890", false},
		{"(123) 456-7890x", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.phone); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestAddInvalidPhoneLeavesStoreUntouched(t *testing.T) {
	b := newTestBook(t)
	err := b.Add(contact.New("John", "Doe", "123-456-7890", "", ""))
	if !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("Add() error = %v, want ErrInvalidPhone", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after rejected add, want 0", b.Len())
	}
}

func TestAddKeepsLastNameOrder(t *testing.T) {
	b := newTestBook(t)
	for _, c := range []*contact.Contact{
		contact.New("John", "zimmer", "(111) 111-1111", "", ""),
		contact.New("Jane", "Adams", "(222) 222-2222", "", ""),
		contact.New("Mike", "Miller", "(333) 333-3333", "", ""),
	} {
		if err := b.Add(c); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	var lasts []string
	for _, c := range b.Contacts() {
		lasts = append(lasts, c.LastName)
	}
	want := []string{"Adams", "Miller", "zimmer"}
	for i := range want {
		if lasts[i] != want[i] {
			t.Fatalf("order = %v, want %v", lasts, want)
		}
	}
}

func TestRemoveByNameCaseInsensitiveAndIdempotent(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))
	b.Add(contact.New("john", "doe", "(999) 999-9999", "", ""))
	b.Add(contact.New("Jane", "Smith", "(555) 123-4567", "", ""))

	if got := b.RemoveByName("  JOHN ", "DOE"); got != 2 {
		t.Errorf("RemoveByName() = %d, want 2", got)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d after remove, want 1", b.Len())
	}
	if got := b.RemoveByName("John", "Doe"); got != 0 {
		t.Errorf("second RemoveByName() = %d, want 0", got)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d after no-op remove, want 1", b.Len())
	}
}

func TestUpdateByNameFirstMatchOnly(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(111) 111-1111", "", ""))
	b.Add(contact.New("John", "Doe", "(222) 222-2222", "", ""))

	err := b.UpdateByName("john", "doe", contact.Fields{Email: "john@example.com"})
	if err != nil {
		t.Fatalf("UpdateByName() error = %v", err)
	}

	cs := b.Contacts()
	if cs[0].Email != "john@example.com" {
		t.Errorf("first match not updated: email = %q", cs[0].Email)
	}
	if cs[1].Email != "" {
		t.Errorf("second match updated: email = %q", cs[1].Email)
	}
}

func TestUpdateByNameNotFound(t *testing.T) {
	b := newTestBook(t)
	err := b.UpdateByName("Nobody", "Here", contact.Fields{Email: "x@y.z"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateByName() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateByNameDoesNotResort(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("Jane", "Adams", "(111) 111-1111", "", ""))
	b.Add(contact.New("Mike", "Miller", "(222) 222-2222", "", ""))

	if err := b.UpdateByName("Jane", "Adams", contact.Fields{LastName: "Zimmer"}); err != nil {
		t.Fatalf("UpdateByName() error = %v", err)
	}

	// Renamed contact stays in its old slot until the next Add.
	if got := b.Contacts()[0].LastName; got != "Zimmer" {
		t.Errorf("Contacts()[0].LastName = %q, want Zimmer still first", got)
	}
}

func TestSearch(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))
	b.Add(contact.New("Jane", "Smith", "(555) 123-4567", "", ""))

	got := b.Search("doe")
	if len(got) != 1 || got[0].LastName != "Doe" {
		t.Errorf("Search(doe) = %d results, want only John Doe", len(got))
	}

	got = b.Search("(555)")
	if len(got) != 1 || got[0].LastName != "Smith" {
		t.Errorf("Search((555)) = %d results, want only Jane Smith", len(got))
	}

	if got := b.Search("  "); len(got) != 2 {
		t.Errorf("Search(blank) = %d results, want all 2", len(got))
	}

	if got := b.Search("zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %d results, want 0", len(got))
	}
}

func TestFilterByDateInclusive(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))

	today := b.Contacts()[0].CreatedAt.Format("2006-01-02")
	got, err := b.FilterByDate(today, today)
	if err != nil {
		t.Fatalf("FilterByDate() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("FilterByDate(today, today) = %d results, want 1", len(got))
	}

	got, err = b.FilterByDate("1999-01-01", "1999-12-31")
	if err != nil {
		t.Fatalf("FilterByDate() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FilterByDate(1999) = %d results, want 0", len(got))
	}
}

func TestFilterByDateMalformedBound(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))

	got, err := b.FilterByDate("2024-13-40", "2024-12-31")
	if err == nil {
		t.Fatal("FilterByDate() with malformed start = nil error")
	}
	if got != nil {
		t.Errorf("FilterByDate() with malformed start returned %d results, want none", len(got))
	}
}

func TestBatchImportMixedRows(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "import.csv")
	data := strings.Join([]string{
		"John,Doe,(123) 456-7890,john@example.com,12 Main St",
		"Jane,Smith,(555) 123-4567",
		"Bad,Phone,123-456-7890",
		"short,row",
	}, "\n")
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	b := New(filepath.Join(dir, "contacts.csv"), nil)
	report, err := b.BatchImport(src)
	if err != nil {
		t.Fatalf("BatchImport() error = %v", err)
	}
	if report.Imported != 2 {
		t.Errorf("Imported = %d, want 2", report.Imported)
	}
	if len(report.Invalid) != 1 || report.Invalid[0] != "Bad Phone: 123-456-7890" {
		t.Errorf("Invalid = %v, want one Bad Phone entry", report.Invalid)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBatchImportMissingFile(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))

	if _, err := b.BatchImport(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("BatchImport(missing) = nil error")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d after failed import, want 1", b.Len())
	}
}

func TestBatchDelete(t *testing.T) {
	dir := t.TempDir()
	b := New(filepath.Join(dir, "contacts.csv"), nil)
	b.Add(contact.New("John", "Doe", "(111) 111-1111", "", ""))
	b.Add(contact.New("john", "doe", "(222) 222-2222", "", ""))
	b.Add(contact.New("Jane", "Smith", "(333) 333-3333", "", ""))

	src := filepath.Join(dir, "delete.csv")
	data := strings.Join([]string{
		"first_name,last_name",
		"John,Doe",
		"Ghost,Person",
	}, "\n")
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := b.BatchDelete(src)
	if err != nil {
		t.Fatalf("BatchDelete() error = %v", err)
	}
	if report.Deleted != 2 {
		t.Errorf("Deleted = %d, want 2", report.Deleted)
	}
	if len(report.NotFound) != 1 || report.NotFound[0] != "Ghost Person" {
		t.Errorf("NotFound = %v, want [Ghost Person]", report.NotFound)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBatchDeleteSkipsHeaderEvenWhenItNamesAContact(t *testing.T) {
	dir := t.TempDir()
	b := New(filepath.Join(dir, "contacts.csv"), nil)
	b.Add(contact.New("John", "Doe", "(111) 111-1111", "", ""))

	src := filepath.Join(dir, "delete.csv")
	if err := os.WriteFile(src, []byte("John,Doe\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := b.BatchDelete(src)
	if err != nil {
		t.Fatalf("BatchDelete() error = %v", err)
	}
	if report.Deleted != 0 {
		t.Errorf("Deleted = %d, want 0; first row is always a header", report.Deleted)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBatchDeleteMissingFile(t *testing.T) {
	b := newTestBook(t)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))

	if _, err := b.BatchDelete(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("BatchDelete(missing) = nil error")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d after failed delete, want 1", b.Len())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")

	b := New(path, nil)
	b.Add(contact.New("John", "Doe", "(123) 456-7890", "john@example.com", "12 Main St"))
	b.Add(contact.New("Jane", "Smith", "(555) 123-4567", "", ""))
	if err := b.SaveToFile(); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	b2 := New(path, nil)
	if err := b2.LoadFromFile(); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if b2.Len() != 2 {
		t.Fatalf("Len() = %d after reload, want 2", b2.Len())
	}

	got := b2.Contacts()[0]
	if got.FirstName != "John" || got.LastName != "Doe" ||
		got.PhoneNumber != "(123) 456-7890" ||
		got.Email != "john@example.com" || got.Address != "12 Main St" {
		t.Errorf("reloaded contact = %v", got)
	}
}

func TestLoadFromFileMissingStartsEmpty(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "missing.csv"), nil)
	if err := b.LoadFromFile(); err != nil {
		t.Fatalf("LoadFromFile(missing) error = %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestDisplay(t *testing.T) {
	b := newTestBook(t)

	var buf bytes.Buffer
	b.Display(&buf)
	if got := buf.String(); got != "No contacts found.\n" {
		t.Errorf("Display(empty) = %q", got)
	}

	b.Add(contact.New("Jane", "Smith", "(555) 123-4567", "", ""))
	buf.Reset()
	b.Display(&buf)
	want := fmt.Sprintln(b.Contacts()[0])
	if got := buf.String(); got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestJournalRecordsMutations(t *testing.T) {
	b := newTestBook(t)
	j := &mockJournal{}
	b.AttachJournal(j)

	b.Add(contact.New("John", "Doe", "(123) 456-7890", "", ""))
	b.Add(contact.New("Bad", "Phone", "nope", "", ""))
	b.UpdateByName("John", "Doe", contact.Fields{Email: "j@d.com"})
	b.RemoveByName("John", "Doe")
	b.RemoveByName("Nobody", "Here")

	want := []string{"add", "update", "remove"}
	if len(j.events) != len(want) {
		t.Fatalf("journal events = %v, want %v", j.events, want)
	}
	for i := range want {
		if j.events[i] != want[i] {
			t.Fatalf("journal events = %v, want %v", j.events, want)
		}
	}
}

func TestJournalErrorDoesNotFailOperation(t *testing.T) {
	b := newTestBook(t)
	b.AttachJournal(&mockJournal{err: errors.New("journal down")})

	if err := b.Add(contact.New("John", "Doe", "(123) 456-7890", "", "")); err != nil {
		t.Errorf("Add() error = %v with failing journal, want nil", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}
