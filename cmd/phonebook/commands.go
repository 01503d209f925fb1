package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Wadeahh3/phonebook/internal/config"
	"github.com/Wadeahh3/phonebook/internal/contact"
	"github.com/Wadeahh3/phonebook/internal/history"
	"github.com/Wadeahh3/phonebook/internal/phonebook"
)

// validEmail is the CLI-side sanity check. The store itself never
// validates email.
func validEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// --- add ---

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Long: `Add a contact to the phone book.

Examples:
  phonebook add --first John --last Doe --phone "(123) 456-7890"
  phonebook add --first Jane --last Smith --phone "(555) 123-4567" --email jane@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		first, _ := cmd.Flags().GetString("first")
		last, _ := cmd.Flags().GetString("last")
		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")
		address, _ := cmd.Flags().GetString("address")

		if first == "" || last == "" || phone == "" {
			return fmt.Errorf("--first, --last, and --phone are required")
		}
		if email != "" && !validEmail(email) {
			return fmt.Errorf("invalid email address: %q", email)
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.book.Add(contact.New(first, last, phone, email, address)); err != nil {
			return err
		}
		if err := s.book.SaveToFile(); err != nil {
			return err
		}

		printSuccess("Added %s %s (%s)", first, last, phone)
		return nil
	},
}

func init() {
	addCmd.Flags().String("first", "", "first name")
	addCmd.Flags().String("last", "", "last name")
	addCmd.Flags().String("phone", "", "phone number, (###) ###-####")
	addCmd.Flags().String("email", "", "email address")
	addCmd.Flags().String("address", "", "postal address")
}

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sortKey, _ := cmd.Flags().GetString("sort")

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		switch sortKey {
		case "first":
			s.book.Sort(phonebook.ByFirstName)
		case "last":
			s.book.Sort(phonebook.ByLastName)
		default:
			return fmt.Errorf("invalid --sort value %q, want first or last", sortKey)
		}

		s.book.Display(os.Stdout)
		return nil
	},
}

func init() {
	listCmd.Flags().String("sort", "last", "sort order: first or last")
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search contacts by name or phone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		results := s.book.Search(args[0])
		if len(results) == 0 {
			fmt.Println("No contacts found.")
			return nil
		}
		for _, c := range results {
			fmt.Println(c)
		}
		return nil
	},
}

// --- filter ---

var filterCmd = &cobra.Command{
	Use:   "filter <start> <end>",
	Short: "List contacts created in a date range (YYYY-MM-DD, inclusive)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.book.FilterByDate(args[0], args[1])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No contacts found.")
			return nil
		}
		for _, c := range results {
			fmt.Println(c)
		}
		return nil
	},
}

// --- update ---

var updateCmd = &cobra.Command{
	Use:   "update <first> <last>",
	Short: "Update the first contact matching a name",
	Long: `Update the first contact whose first and last name match.
Only the flags you pass are changed.

Example:
  phonebook update John Doe --phone "(999) 888-7777" --email john@new.example`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newFirst, _ := cmd.Flags().GetString("first")
		newLast, _ := cmd.Flags().GetString("last")
		phone, _ := cmd.Flags().GetString("phone")
		email, _ := cmd.Flags().GetString("email")
		address, _ := cmd.Flags().GetString("address")

		if newFirst == "" && newLast == "" && phone == "" && email == "" && address == "" {
			return fmt.Errorf("nothing to update: pass at least one of --first, --last, --phone, --email, --address")
		}
		if phone != "" && !phonebook.ValidPhone(phone) {
			return fmt.Errorf("invalid phone number format, want (###) ###-####")
		}
		if email != "" && !validEmail(email) {
			return fmt.Errorf("invalid email address: %q", email)
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		fields := contact.Fields{
			FirstName:   newFirst,
			LastName:    newLast,
			PhoneNumber: phone,
			Email:       email,
			Address:     address,
		}
		if err := s.book.UpdateByName(args[0], args[1], fields); err != nil {
			return err
		}
		if err := s.book.SaveToFile(); err != nil {
			return err
		}

		printSuccess("Updated %s %s", args[0], args[1])
		return nil
	},
}

func init() {
	updateCmd.Flags().String("first", "", "new first name")
	updateCmd.Flags().String("last", "", "new last name")
	updateCmd.Flags().String("phone", "", "new phone number")
	updateCmd.Flags().String("email", "", "new email address")
	updateCmd.Flags().String("address", "", "new postal address")
}

// --- remove ---

var removeCmd = &cobra.Command{
	Use:   "remove <first> <last>",
	Short: "Remove all contacts matching a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("removal deletes every matching contact; re-run with --yes to confirm")
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		removed := s.book.RemoveByName(args[0], args[1])
		if removed == 0 {
			printWarning("No contact named %s %s", args[0], args[1])
			return nil
		}
		if err := s.book.SaveToFile(); err != nil {
			return err
		}

		printSuccess("Removed %d contact(s)", removed)
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("yes", false, "confirm removal")
}

// --- import ---

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import contacts from a CSV file",
	Long: `Import contacts from a CSV file with rows of
first,last,phone[,email[,address]] and no header row.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.book.BatchImport(args[0])
		if err != nil {
			return err
		}
		if err := s.book.SaveToFile(); err != nil {
			return err
		}

		printSuccess("Imported %d contact(s)", report.Imported)
		for _, inv := range report.Invalid {
			printWarning("Skipped invalid phone: %s", inv)
		}
		return nil
	},
}

// --- batch-delete ---

var batchDeleteCmd = &cobra.Command{
	Use:   "batch-delete <file>",
	Short: "Remove contacts named in a CSV file",
	Long: `Remove contacts named in a CSV file with a header row followed by
first,last rows. Every contact matching a row is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("batch delete removes every listed contact; re-run with --yes to confirm")
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.book.BatchDelete(args[0])
		if err != nil {
			return err
		}
		if err := s.book.SaveToFile(); err != nil {
			return err
		}

		printSuccess("Removed %d contact(s)", report.Deleted)
		for _, nf := range report.NotFound {
			printWarning("Not found: %s", nf)
		}
		return nil
	},
}

func init() {
	batchDeleteCmd.Flags().Bool("yes", false, "confirm batch delete")
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent phone book changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		hist, err := history.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening history store: %w", err)
		}
		defer hist.Close()

		events, err := hist.Recent(limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No history recorded.")
			return nil
		}
		for _, e := range events {
			fmt.Printf("%s  %-12s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Op, e.Detail)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of events to list")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		for _, info := range config.ShowAll(cfg) {
			printStatus(info.Key, "%s  (env %s)", info.Value, info.EnvVar)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.SetKey(key, value); err != nil {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(config.ValidKeys(), ", "))
		}
		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
