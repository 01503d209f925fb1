package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Wadeahh3/phonebook/internal/contact"
	"github.com/Wadeahh3/phonebook/internal/phonebook"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Book *phonebook.Book
}

// NewMCPServer creates an MCP server exposing the contact store as
// tools and a resource, served over stdio by the mcp command.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"phonebook",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("phonebook — local contact manager for adding, searching, and listing contacts."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_contacts",
			mcp.WithDescription("Search contacts by name or phone number substring. An empty query returns all contacts."),
			mcp.WithString("query", mcp.Description("Search text")),
		),
		mcpSearchContacts(deps),
	)

	s.AddTool(
		mcp.NewTool("add_contact",
			mcp.WithDescription("Add a contact. The phone number must be in (###) ###-#### format."),
			mcp.WithString("first_name", mcp.Description("First name"), mcp.Required()),
			mcp.WithString("last_name", mcp.Description("Last name"), mcp.Required()),
			mcp.WithString("phone_number", mcp.Description("Phone number, (###) ###-####"), mcp.Required()),
			mcp.WithString("email", mcp.Description("Optional email address")),
			mcp.WithString("address", mcp.Description("Optional postal address")),
		),
		mcpAddContact(deps),
	)

	s.AddTool(
		mcp.NewTool("list_contacts",
			mcp.WithDescription("List all contacts in last-name order."),
		),
		mcpListContacts(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"phonebook://contacts",
			"Contacts",
			mcp.WithResourceDescription("All stored contacts as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceContacts(deps),
	)

	return s
}

func contactsAsJSON(contacts []*contact.Contact) (string, error) {
	out := make([]contactJSON, len(contacts))
	for i, c := range contacts {
		out[i] = toJSON(c)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func mcpSearchContacts(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		text, err := contactsAsJSON(deps.Book.Search(query))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(text), nil
	}
}

func mcpAddContact(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		first, err := req.RequireString("first_name")
		if err != nil {
			return mcpError("first_name is required"), nil
		}
		last, err := req.RequireString("last_name")
		if err != nil {
			return mcpError("last_name is required"), nil
		}
		phone, err := req.RequireString("phone_number")
		if err != nil {
			return mcpError("phone_number is required"), nil
		}
		email := req.GetString("email", "")
		address := req.GetString("address", "")

		c := contact.New(strings.TrimSpace(first), strings.TrimSpace(last), phone, email, address)
		if err := deps.Book.Add(c); err != nil {
			return mcpError(fmt.Sprintf("failed to add contact: %v", err)), nil
		}
		if err := deps.Book.SaveToFile(); err != nil {
			return mcpError(fmt.Sprintf("contact added but save failed: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Added %s %s (%s)", c.FirstName, c.LastName, c.PhoneNumber)), nil
	}
}

func mcpListContacts(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := contactsAsJSON(deps.Book.Contacts())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal contacts: %v", err)), nil
		}
		return mcpText(text), nil
	}
}

func mcpResourceContacts(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := contactsAsJSON(deps.Book.Contacts())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal contacts: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
