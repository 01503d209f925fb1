// Package api exposes the loaded contact store over HTTP and MCP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Wadeahh3/phonebook/internal/contact"
	"github.com/Wadeahh3/phonebook/internal/phonebook"
)

const maxBodySize = 1 << 20 // 1MB

// Deps holds dependencies for the HTTP handler.
type Deps struct {
	Book *phonebook.Book
	Log  *slog.Logger
}

// NewHandler builds the router for the serve command. The server binds
// to loopback and carries no auth; it exists for local integrations.
func NewHandler(deps Deps) http.Handler {
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()

	r.Get("/health", handleHealth())
	r.Get("/contacts", handleListContacts(deps))
	r.Get("/search", handleSearch(deps))
	r.Post("/contacts", handleAddContact(deps))

	return r
}

type contactJSON struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func toJSON(c *contact.Contact) contactJSON {
	return contactJSON{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func writeContacts(w http.ResponseWriter, contacts []*contact.Contact) {
	out := make([]contactJSON, len(contacts))
	for i, c := range contacts {
		out[i] = toJSON(c)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func handleListContacts(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeContacts(w, deps.Book.Contacts())
	}
}

func handleSearch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		writeContacts(w, deps.Book.Search(q))
	}
}

func handleAddContact(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var req contactJSON
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.FirstName == "" || req.LastName == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "first_name and last_name are required")
			return
		}

		c := contact.New(req.FirstName, req.LastName, req.PhoneNumber, req.Email, req.Address)
		if err := deps.Book.Add(c); err != nil {
			if errors.Is(err, phonebook.ErrInvalidPhone) {
				httpError(w, http.StatusUnprocessableEntity, "invalid_request_error", "%v", err)
				return
			}
			deps.Log.Error("adding contact", "error", err)
			httpError(w, http.StatusInternalServerError, "api_error", "failed to add contact")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toJSON(c))
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
