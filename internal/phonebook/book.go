// Package phonebook implements the in-memory contact store and its
// CSV persistence.
package phonebook

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Wadeahh3/phonebook/internal/contact"
)

var (
	// ErrInvalidPhone is returned by Add when the phone number does not
	// match the (###) ###-#### format.
	ErrInvalidPhone = errors.New("invalid phone number format, want (###) ###-####")

	// ErrNotFound is returned when a name lookup matches no contact.
	ErrNotFound = errors.New("contact not found")
)

// phonePattern must match the full string; partial matches are rejected.
var phonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

// ValidPhone reports whether s is exactly (###) ###-#### with # a digit.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// SortKey selects the attribute Sort orders by.
type SortKey string

const (
	ByFirstName SortKey = "first_name"
	ByLastName  SortKey = "last_name"
)

// Journal records completed mutations for the change history.
// Implemented by history.Store.
type Journal interface {
	Record(op, detail string) error
}

// Book is the in-memory, last-name-sorted contact store bound to a CSV
// persistence file. It is not safe for concurrent use; the tool runs a
// single session at a time.
type Book struct {
	path     string
	log      *slog.Logger
	journal  Journal
	contacts []*contact.Contact
}

// New creates an empty Book persisted at path. A nil logger discards
// all log output.
func New(path string, logger *slog.Logger) *Book {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Book{path: path, log: logger}
}

// AttachJournal wires a change journal. Mutations are recorded after
// they succeed; a journal error is logged and otherwise ignored, so the
// store works identically without one.
func (b *Book) AttachJournal(j Journal) {
	b.journal = j
}

func (b *Book) record(op, detail string) {
	if b.journal == nil {
		return
	}
	if err := b.journal.Record(op, detail); err != nil {
		b.log.Warn("recording history event", "op", op, "error", err)
	}
}

// Add validates the phone number, appends the contact and re-sorts the
// store by last name. An invalid phone leaves the store untouched.
func (b *Book) Add(c *contact.Contact) error {
	if err := b.add(c); err != nil {
		return err
	}
	b.record("add", fmt.Sprintf("%s %s (%s)", c.FirstName, c.LastName, c.PhoneNumber))
	return nil
}

// add is Add without journaling, shared with the batch and load paths
// so those record a single summary event instead of one per row.
func (b *Book) add(c *contact.Contact) error {
	if !ValidPhone(c.PhoneNumber) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, c.PhoneNumber)
	}
	b.contacts = append(b.contacts, c)
	b.log.Info("added contact", "first", c.FirstName, "last", c.LastName, "phone", c.PhoneNumber)
	b.Sort(ByLastName)
	return nil
}

// Sort reorders the whole store by the chosen key, case-insensitively.
// Contacts with equal keys keep their relative order.
func (b *Book) Sort(key SortKey) {
	switch key {
	case ByFirstName:
		sort.SliceStable(b.contacts, func(i, j int) bool {
			return strings.ToLower(b.contacts[i].FirstName) < strings.ToLower(b.contacts[j].FirstName)
		})
	case ByLastName:
		sort.SliceStable(b.contacts, func(i, j int) bool {
			return strings.ToLower(b.contacts[i].LastName) < strings.ToLower(b.contacts[j].LastName)
		})
	}
	b.log.Debug("contacts sorted", "key", string(key))
}

// RemoveByName deletes every contact whose first and last name match
// case-insensitively after trimming whitespace. It returns the number
// removed; zero means nothing matched.
func (b *Book) RemoveByName(first, last string) int {
	removed := b.removeByName(first, last)
	if removed > 0 {
		b.record("remove", fmt.Sprintf("%s %s (%d removed)", strings.TrimSpace(first), strings.TrimSpace(last), removed))
	}
	return removed
}

func (b *Book) removeByName(first, last string) int {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)

	kept := b.contacts[:0]
	removed := 0
	for _, c := range b.contacts {
		if strings.EqualFold(strings.TrimSpace(c.FirstName), first) &&
			strings.EqualFold(strings.TrimSpace(c.LastName), last) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	b.contacts = kept

	if removed > 0 {
		b.log.Info("removed contact", "first", first, "last", last, "count", removed)
	} else {
		b.log.Warn("contact not found", "first", first, "last", last)
	}
	return removed
}

// UpdateByName applies f to the first contact matching both names
// case-insensitively, and returns ErrNotFound when there is none.
//
// The store is not re-sorted afterwards, so a last-name change leaves
// the order stale until the next Add. Long-standing behavior, kept
// because callers may depend on the order staying put across updates.
func (b *Book) UpdateByName(first, last string, f contact.Fields) error {
	for _, c := range b.contacts {
		if strings.EqualFold(c.FirstName, first) && strings.EqualFold(c.LastName, last) {
			c.Update(f)
			b.log.Info("updated contact", "first", c.FirstName, "last", c.LastName)
			b.record("update", fmt.Sprintf("%s %s", first, last))
			return nil
		}
	}
	b.log.Warn("update target not found", "first", first, "last", last)
	return fmt.Errorf("%w: %s %s", ErrNotFound, first, last)
}

// Search returns every contact whose first name, last name or phone
// number contains query. Names are matched case-insensitively; the
// phone number is matched as-is since it is digits and punctuation.
// An empty query matches everything.
func (b *Book) Search(query string) []*contact.Contact {
	q := strings.ToLower(strings.TrimSpace(query))

	var result []*contact.Contact
	for _, c := range b.contacts {
		if strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			strings.Contains(c.PhoneNumber, q) {
			result = append(result, c)
		}
	}
	b.log.Info("searched contacts", "query", q, "found", len(result))
	return result
}

const dateLayout = "2006-01-02"

// FilterByDate returns the contacts created between start and end
// (YYYY-MM-DD, inclusive, time of day ignored). A malformed bound is
// reported as an error with an empty result, never a panic.
func (b *Book) FilterByDate(start, end string) ([]*contact.Contact, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q, want YYYY-MM-DD: %w", start, err)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q, want YYYY-MM-DD: %w", end, err)
	}

	var result []*contact.Contact
	for _, c := range b.contacts {
		d := dateOnly(c.CreatedAt)
		if !d.Before(from) && !d.After(to) {
			result = append(result, c)
		}
	}
	b.log.Info("filtered contacts by date", "start", start, "end", end, "found", len(result))
	return result, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Display writes every contact, one per line, in current store order.
func (b *Book) Display(w io.Writer) {
	if len(b.contacts) == 0 {
		fmt.Fprintln(w, "No contacts found.")
		return
	}
	for _, c := range b.contacts {
		fmt.Fprintln(w, c)
	}
}

// Contacts returns the backing slice in current store order. Callers
// must not reorder it directly; use Sort.
func (b *Book) Contacts() []*contact.Contact {
	return b.contacts
}

// Len returns the number of stored contacts.
func (b *Book) Len() int {
	return len(b.contacts)
}
