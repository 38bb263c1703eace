package repolink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotSubmittable is returned when entries cannot be submitted.
var ErrNotSubmittable = errors.New("repository links are not ready to submit")

// Entries is the editable list of repository URLs. It always holds at least
// one entry; a fresh list holds a single empty one.
type Entries struct {
	values []string
}

// NewEntries returns a list holding one empty entry, pre-filled with values
// when given.
func NewEntries(values ...string) *Entries {
	e := &Entries{}
	e.values = append(e.values, values...)
	if len(e.values) == 0 {
		e.values = []string{""}
	}
	return e
}

// Len returns the number of entries, including empty ones.
func (e *Entries) Len() int { return len(e.values) }

// Add appends an entry.
func (e *Entries) Add(value string) {
	e.values = append(e.values, value)
}

// Set replaces the entry at index i.
func (e *Entries) Set(i int, value string) error {
	if i < 0 || i >= len(e.values) {
		return fmt.Errorf("entry %d out of range (have %d)", i, len(e.values))
	}
	e.values[i] = value
	return nil
}

// Remove deletes the entry at index i. Removing the only entry leaves a
// single empty one behind.
func (e *Entries) Remove(i int) error {
	if i < 0 || i >= len(e.values) {
		return fmt.Errorf("entry %d out of range (have %d)", i, len(e.values))
	}
	e.values = append(e.values[:i], e.values[i+1:]...)
	if len(e.values) == 0 {
		e.values = []string{""}
	}
	return nil
}

// Values returns a copy of every entry.
func (e *Entries) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

// NonEmpty returns the trimmed entries that are not blank.
func (e *Entries) NonEmpty() []string {
	var out []string
	for _, v := range e.values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// EntryError describes one entry that failed validation.
type EntryError struct {
	Index int
	Value string
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry %d (%q): %v", e.Index+1, e.Value, e.Err)
}

// Validate returns an error for every non-empty entry that is not a valid
// absolute URL.
func (e *Entries) Validate() []EntryError {
	var errs []EntryError
	for i, v := range e.values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if err := ValidateURL(v); err != nil {
			errs = append(errs, EntryError{Index: i, Value: v, Err: err})
		}
	}
	return errs
}

// CanSubmit reports whether there is at least one non-empty entry and every
// non-empty entry is a valid URL.
func (e *Entries) CanSubmit() bool {
	return len(e.NonEmpty()) > 0 && len(e.Validate()) == 0
}

// Submittable returns the links to submit, or an error explaining why the
// entries cannot be submitted yet.
func (e *Entries) Submittable() ([]string, error) {
	links := e.NonEmpty()
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: enter at least one repository URL", ErrNotSubmittable)
	}
	if errs := e.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrNotSubmittable, strings.Join(msgs, "; "))
	}
	return links, nil
}

// ValidateURL checks that raw is a syntactically valid absolute URL with a
// scheme and a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme == "" {
		return errors.New("URL must include a scheme such as https://")
	}
	if u.Host == "" {
		return errors.New("URL must include a host")
	}
	return nil
}
