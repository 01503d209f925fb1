package contact

import (
	"testing"
	"time"
)

func TestNewAtSetsBothTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	c := NewAt("John", "Doe", "(123) 456-7890", "john@example.com", "", now)

	if !c.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", c.CreatedAt, now)
	}
	if !c.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", c.UpdatedAt, now)
	}
}

func TestUpdateAtAppliesNonEmptyFields(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	c := NewAt("John", "Doe", "(123) 456-7890", "john@example.com", "12 Main St", created)
	c.UpdateAt(Fields{PhoneNumber: "(999) 888-7777", Address: "34 Oak Ave"}, updated)

	if c.FirstName != "John" || c.LastName != "Doe" {
		t.Errorf("names changed: got %s %s", c.FirstName, c.LastName)
	}
	if c.PhoneNumber != "(999) 888-7777" {
		t.Errorf("PhoneNumber = %q, want updated value", c.PhoneNumber)
	}
	if c.Email != "john@example.com" {
		t.Errorf("Email = %q, want unchanged", c.Email)
	}
	if c.Address != "34 Oak Ave" {
		t.Errorf("Address = %q, want updated value", c.Address)
	}
	if !c.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt moved to %v", c.CreatedAt)
	}
	if !c.UpdatedAt.Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v", c.UpdatedAt, updated)
	}
}

func TestUpdateAtRefreshesTimestampEvenWhenEmpty(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Minute)

	c := NewAt("Jane", "Smith", "(555) 123-4567", "", "", created)
	c.UpdateAt(Fields{}, updated)

	if !c.UpdatedAt.Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v after empty update", c.UpdatedAt, updated)
	}
}

func TestStringRendersNAForMissingOptionals(t *testing.T) {
	c := New("Jane", "Smith", "(555) 123-4567", "", "")
	got := c.String()
	want := "Jane Smith: (555) 123-4567 | Email: N/A | Address: N/A"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	c2 := New("John", "Doe", "(123) 456-7890", "john@example.com", "12 Main St")
	got2 := c2.String()
	want2 := "John Doe: (123) 456-7890 | Email: john@example.com | Address: 12 Main St"
	if got2 != want2 {
		t.Errorf("String() = %q, want %q", got2, want2)
	}
}
