package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Wadeahh3/phonebook/internal/contact"
	"github.com/Wadeahh3/phonebook/internal/phonebook"
)

// runMenu is the interactive session started by a bare invocation.
// It loads the book once, loops on a numbered menu, and saves on exit.
func runMenu() error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	in := bufio.NewScanner(os.Stdin)

	for {
		printMenu()
		choice, ok := prompt(in, "Choose an option: ")
		if !ok {
			// Stdin closed; save and leave like option 9.
			return s.book.SaveToFile()
		}

		switch strings.TrimSpace(choice) {
		case "1":
			menuAdd(s, in)
		case "2":
			menuImport(s, in)
		case "3":
			s.book.Display(os.Stdout)
		case "4":
			menuSearch(s, in)
		case "5":
			menuFilter(s, in)
		case "6":
			menuUpdate(s, in)
		case "7":
			menuRemove(s, in)
		case "8":
			menuBatchDelete(s, in)
		case "9":
			if err := s.book.SaveToFile(); err != nil {
				return err
			}
			printSuccess("Contacts saved. Goodbye!")
			return nil
		default:
			printWarning("Invalid option, choose 1-9")
		}
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println(colorize(colorBold, "Phone Book"))
	fmt.Println("  1. Add contact")
	fmt.Println("  2. Import contacts from CSV")
	fmt.Println("  3. View all contacts")
	fmt.Println("  4. Search contacts")
	fmt.Println("  5. Filter by creation date")
	fmt.Println("  6. Update contact")
	fmt.Println("  7. Delete contact by name")
	fmt.Println("  8. Batch delete from CSV")
	fmt.Println("  9. Save and exit")
}

// prompt prints a label and reads one line. ok is false when stdin is
// closed.
func prompt(in *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !in.Scan() {
		fmt.Println()
		return "", false
	}
	return in.Text(), true
}

func confirm(in *bufio.Scanner, label string) bool {
	answer, ok := prompt(in, label+" (y/n): ")
	if !ok {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func menuAdd(s *session, in *bufio.Scanner) {
	first, ok := prompt(in, "First name: ")
	if !ok {
		return
	}
	last, ok := prompt(in, "Last name: ")
	if !ok {
		return
	}
	if strings.TrimSpace(first) == "" || strings.TrimSpace(last) == "" {
		printError("First and last name are required")
		return
	}

	phone, ok := prompt(in, "Phone number ((###) ###-####): ")
	if !ok {
		return
	}
	if !phonebook.ValidPhone(phone) {
		printError("Invalid phone number format, want (###) ###-####")
		return
	}

	email, ok := prompt(in, "Email (optional): ")
	if !ok {
		return
	}
	if email != "" && !validEmail(email) {
		printError("Invalid email address: %q", email)
		return
	}

	address, ok := prompt(in, "Address (optional): ")
	if !ok {
		return
	}

	if err := s.book.Add(contact.New(first, last, phone, email, address)); err != nil {
		printError("%v", err)
		return
	}
	printSuccess("Added %s %s", first, last)
}

func menuImport(s *session, in *bufio.Scanner) {
	path, ok := prompt(in, "CSV file to import: ")
	if !ok {
		return
	}

	report, err := s.book.BatchImport(strings.TrimSpace(path))
	if err != nil {
		printError("%v", err)
		return
	}
	printSuccess("Imported %d contact(s)", report.Imported)
	for _, inv := range report.Invalid {
		printWarning("Skipped invalid phone: %s", inv)
	}
}

func menuSearch(s *session, in *bufio.Scanner) {
	query, ok := prompt(in, "Search for: ")
	if !ok {
		return
	}

	results := s.book.Search(query)
	if len(results) == 0 {
		fmt.Println("No contacts found.")
		return
	}
	for _, c := range results {
		fmt.Println(c)
	}
}

func menuFilter(s *session, in *bufio.Scanner) {
	start, ok := prompt(in, "Start date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	end, ok := prompt(in, "End date (YYYY-MM-DD): ")
	if !ok {
		return
	}

	results, err := s.book.FilterByDate(strings.TrimSpace(start), strings.TrimSpace(end))
	if err != nil {
		printError("%v", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("No contacts found.")
		return
	}
	for _, c := range results {
		fmt.Println(c)
	}
}

// hasContact reports whether any contact matches the name pair, so the
// update and delete flows can bail out before prompting further.
func hasContact(s *session, first, last string) bool {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	for _, c := range s.book.Contacts() {
		if strings.EqualFold(strings.TrimSpace(c.FirstName), first) &&
			strings.EqualFold(strings.TrimSpace(c.LastName), last) {
			return true
		}
	}
	return false
}

func menuUpdate(s *session, in *bufio.Scanner) {
	first, ok := prompt(in, "First name of contact to update: ")
	if !ok {
		return
	}
	last, ok := prompt(in, "Last name of contact to update: ")
	if !ok {
		return
	}
	if !hasContact(s, first, last) {
		printWarning("No contact named %s %s", strings.TrimSpace(first), strings.TrimSpace(last))
		return
	}

	fmt.Println("Leave a field blank to keep its current value.")

	newFirst, ok := prompt(in, "New first name: ")
	if !ok {
		return
	}
	newLast, ok := prompt(in, "New last name: ")
	if !ok {
		return
	}
	phone, ok := prompt(in, "New phone number: ")
	if !ok {
		return
	}
	if phone != "" && !phonebook.ValidPhone(phone) {
		printError("Invalid phone number format, want (###) ###-####")
		return
	}
	email, ok := prompt(in, "New email: ")
	if !ok {
		return
	}
	if email != "" && !validEmail(email) {
		printError("Invalid email address: %q", email)
		return
	}
	address, ok := prompt(in, "New address: ")
	if !ok {
		return
	}

	fields := contact.Fields{
		FirstName:   newFirst,
		LastName:    newLast,
		PhoneNumber: phone,
		Email:       email,
		Address:     address,
	}
	if err := s.book.UpdateByName(first, last, fields); err != nil {
		printError("%v", err)
		return
	}
	printSuccess("Updated %s %s", strings.TrimSpace(first), strings.TrimSpace(last))
}

func menuRemove(s *session, in *bufio.Scanner) {
	first, ok := prompt(in, "First name of contact to delete: ")
	if !ok {
		return
	}
	last, ok := prompt(in, "Last name of contact to delete: ")
	if !ok {
		return
	}
	if !hasContact(s, first, last) {
		printWarning("No contact named %s %s", strings.TrimSpace(first), strings.TrimSpace(last))
		return
	}

	if !confirm(in, fmt.Sprintf("Delete every contact named %s %s?", strings.TrimSpace(first), strings.TrimSpace(last))) {
		fmt.Println("Cancelled.")
		return
	}

	removed := s.book.RemoveByName(first, last)
	printSuccess("Removed %d contact(s)", removed)
}

func menuBatchDelete(s *session, in *bufio.Scanner) {
	path, ok := prompt(in, "CSV file with names to delete: ")
	if !ok {
		return
	}

	if !confirm(in, "Delete every contact listed in the file?") {
		fmt.Println("Cancelled.")
		return
	}

	report, err := s.book.BatchDelete(strings.TrimSpace(path))
	if err != nil {
		printError("%v", err)
		return
	}
	printSuccess("Removed %d contact(s)", report.Deleted)
	for _, nf := range report.NotFound {
		printWarning("Not found: %s", nf)
	}
}
