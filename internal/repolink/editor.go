package repolink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEditorAborted is returned when the user quits the editor without submitting.
var ErrEditorAborted = errors.New("link editing aborted")

const editorHelp = `Commands:
  add <url>         add an entry
  set <n> <url>     replace entry n
  rm <n>            remove entry n
  list              show entries
  submit            finish and submit
  quit              abort
`

// RunEditor edits entries line by line from r, echoing state to w, until the
// user submits valid entries or quits. A bare URL is shorthand for add (or
// for filling the first entry while it is still empty).
func RunEditor(entries *Entries, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	fmt.Fprint(w, editorHelp)
	printEntries(entries, w)

	for {
		fmt.Fprint(w, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return ErrEditorAborted
			}
			return fmt.Errorf("reading input: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch cmd := strings.ToLower(fields[0]); cmd {
		case "add":
			if len(fields) != 2 {
				fmt.Fprintln(w, "usage: add <url>")
				continue
			}
			addOrFill(entries, fields[1])
		case "set":
			if len(fields) != 3 {
				fmt.Fprintln(w, "usage: set <n> <url>")
				continue
			}
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Fprintf(w, "invalid entry number %q\n", fields[1])
				continue
			}
			if setErr := entries.Set(n-1, fields[2]); setErr != nil {
				fmt.Fprintln(w, setErr)
				continue
			}
		case "rm", "remove":
			if len(fields) != 2 {
				fmt.Fprintln(w, "usage: rm <n>")
				continue
			}
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Fprintf(w, "invalid entry number %q\n", fields[1])
				continue
			}
			if rmErr := entries.Remove(n - 1); rmErr != nil {
				fmt.Fprintln(w, rmErr)
				continue
			}
		case "list", "ls":
		case "submit", "done":
			if _, subErr := entries.Submittable(); subErr != nil {
				fmt.Fprintln(w, subErr)
				continue
			}
			return nil
		case "quit", "exit", "q":
			return ErrEditorAborted
		case "help", "?":
			fmt.Fprint(w, editorHelp)
			continue
		default:
			if len(fields) == 1 && strings.Contains(cmd, "://") {
				addOrFill(entries, fields[0])
			} else {
				fmt.Fprintf(w, "unknown command %q (type help)\n", fields[0])
				continue
			}
		}
		printEntries(entries, w)
	}
}

func addOrFill(entries *Entries, value string) {
	if vals := entries.Values(); len(vals) == 1 && strings.TrimSpace(vals[0]) == "" {
		_ = entries.Set(0, value)
		return
	}
	entries.Add(value)
}

func printEntries(entries *Entries, w io.Writer) {
	invalid := map[int]error{}
	for _, e := range entries.Validate() {
		invalid[e.Index] = e.Err
	}
	for i, v := range entries.Values() {
		switch {
		case strings.TrimSpace(v) == "":
			fmt.Fprintf(w, "  %d) (empty)\n", i+1)
		case invalid[i] != nil:
			fmt.Fprintf(w, "  %d) %s  [invalid: %v]\n", i+1, v, invalid[i])
		default:
			fmt.Fprintf(w, "  %d) %s\n", i+1, v)
		}
	}
	if entries.CanSubmit() {
		fmt.Fprintln(w, "Ready to submit.")
	}
}
