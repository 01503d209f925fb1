// Package contact defines the record type the phone book stores.
package contact

import (
	"fmt"
	"time"
)

// Contact is one person's entry. Identity is the first/last name pair;
// everything else is mutable through Update. Email and Address are
// optional, with the empty string meaning "not provided".
type Contact struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields carries replacement values for Update. An empty field means
// "leave unchanged"; a field cannot be cleared through an update,
// matching the interactive flow where a blank answer skips the question.
type Fields struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Address     string
}

// New creates a contact with both timestamps set to the current time.
// No validation happens here; the store checks the phone format on Add.
func New(first, last, phone, email, address string) *Contact {
	return NewAt(first, last, phone, email, address, time.Now())
}

// NewAt is New with an explicit construction time, for tests.
func NewAt(first, last, phone, email, address string, now time.Time) *Contact {
	return &Contact{
		FirstName:   first,
		LastName:    last,
		PhoneNumber: phone,
		Email:       email,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update overwrites every attribute for which f carries a non-empty
// value. UpdatedAt is refreshed whether or not anything changed.
func (c *Contact) Update(f Fields) {
	c.UpdateAt(f, time.Now())
}

// UpdateAt is Update with an explicit time, for tests.
func (c *Contact) UpdateAt(f Fields, now time.Time) {
	if f.FirstName != "" {
		c.FirstName = f.FirstName
	}
	if f.LastName != "" {
		c.LastName = f.LastName
	}
	if f.PhoneNumber != "" {
		c.PhoneNumber = f.PhoneNumber
	}
	if f.Email != "" {
		c.Email = f.Email
	}
	if f.Address != "" {
		c.Address = f.Address
	}
	c.UpdatedAt = now
}

// String renders the one-line summary used by list output.
func (c *Contact) String() string {
	return fmt.Sprintf("%s %s: %s | Email: %s | Address: %s",
		c.FirstName, c.LastName, c.PhoneNumber, orNA(c.Email), orNA(c.Address))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
