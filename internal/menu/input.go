package menu

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// readLine reads the next input line, trimmed. Returns io.EOF when the input
// is exhausted.
func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// promptInt keeps prompting until the user enters an integer in [min, max].
func (m *Menu) promptInt(prompt string, min, max int) (int, error) {
	for {
		fmt.Fprint(m.out, prompt)
		line, err := m.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input, please try again.")
			continue
		}
		if n < min || n > max {
			fmt.Fprintf(m.out, "Invalid input, please choose between %d and %d\n", min, max)
			continue
		}
		return n, nil
	}
}

// promptNonEmpty keeps prompting until a non-empty line is entered.
func (m *Menu) promptNonEmpty(prompt string) (string, error) {
	for {
		fmt.Fprint(m.out, prompt)
		line, err := m.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

// promptDate keeps prompting until a valid calendar date is entered.
func (m *Menu) promptDate(prompt string) (time.Time, error) {
	for {
		fmt.Fprint(m.out, prompt)
		line, err := m.readLine()
		if err != nil {
			return time.Time{}, err
		}
		d, err := ParseDate(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid date format or invalid calendar date.")
			continue
		}
		return d, nil
	}
}

// confirmExit asks the user to confirm leaving. Defaults to no.
func (m *Menu) confirmExit() (bool, error) {
	fmt.Fprint(m.out, "Are you sure you wish to exit? All analyzed stocks will be lost [y/N]: ")
	for {
		line, err := m.readLine()
		if err != nil {
			return true, err // EOF counts as leaving
		}
		switch strings.ToLower(line) {
		case "y":
			return true, nil
		case "n", "":
			return false, nil
		default:
			fmt.Fprint(m.out, "Invalid input. Please try again: ")
		}
	}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ValidateRange checks that start precedes end and neither date is in the
// future relative to today.
func ValidateRange(start, end, today time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("start date must occur before end date")
	}
	if start.After(today) || end.After(today) {
		return fmt.Errorf("date(s) entered cannot be in the future")
	}
	return nil
}
