package payload

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hackhub-labs/hackadmin/internal/api"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Kind selects the schema a document is validated against.
type Kind string

const (
	KindAnnouncement Kind = "announcement"
	KindWinners      Kind = "winners"
)

var (
	schemasMu sync.Mutex
	schemas   = map[Kind]*jsonschema.Schema{}
	printer   = message.NewPrinter(language.English)
)

// Issue is a single schema violation.
type Issue struct {
	Path    string // Instance location (e.g., "/title", "/winners/1")
	Message string
	Keyword string
}

// ValidationError lists every violation found in a payload file.
type ValidationError struct {
	File   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		path := issue.Path
		if path == "" {
			path = "/"
		}
		lines[i] = fmt.Sprintf("  %s: %s", path, issue.Message)
	}
	return fmt.Sprintf("%s is invalid:\n%s", e.File, strings.Join(lines, "\n"))
}

func getSchema(kind Kind) (*jsonschema.Schema, error) {
	schemasMu.Lock()
	defer schemasMu.Unlock()

	if s, ok := schemas[kind]; ok {
		return s, nil
	}

	name := string(kind) + ".schema.json"
	raw, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown payload kind %q", kind)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	schemas[kind] = s
	return s, nil
}

// Validate checks YAML data against the schema for kind. The error return is
// for unreadable YAML or schema failures; violations are returned as issues.
func Validate(kind Kind, data []byte) ([]Issue, error) {
	schema, err := getSchema(kind)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []Issue{{Message: ve.Error()}}
	}
	return issues, nil
}

// collectIssues walks the error tree and keeps leaf errors.
func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "$ref" {
		return
	}
	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}

func loadValid(kind Kind, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	issues, err := Validate(kind, data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &ValidationError{File: path, Issues: issues}
	}
	return data, nil
}

// LoadAnnouncement reads and validates an announcement file.
func LoadAnnouncement(path string) (api.AnnouncementRequest, error) {
	data, err := loadValid(KindAnnouncement, path)
	if err != nil {
		return api.AnnouncementRequest{}, err
	}
	var req api.AnnouncementRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return api.AnnouncementRequest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	return req, nil
}

// LoadWinners reads and validates a winners file and returns the team ids.
// Numeric ids are returned in their decimal form.
func LoadWinners(path string) ([]string, error) {
	data, err := loadValid(KindWinners, path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Winners []interface{} `yaml:"winners"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	winners := make([]string, 0, len(doc.Winners))
	for _, w := range doc.Winners {
		winners = append(winners, fmt.Sprint(w))
	}
	return winners, nil
}

// CheckAnnouncement validates an announcement built from flags with the same
// rules applied to announcement files.
func CheckAnnouncement(req api.AnnouncementRequest) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding announcement: %w", err)
	}
	issues, err := Validate(KindAnnouncement, data)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return &ValidationError{File: "announcement", Issues: issues}
	}
	return nil
}
