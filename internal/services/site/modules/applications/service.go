package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage"
)

const (
	minNameLength     = 2
	minInterestLength = 10

	messageNameTooShort     = "Name must be at least 2 characters"
	messageInvalidEmail     = "Please enter a valid email address"
	messageInterestTooShort = "Please tell us more about your interest (minimum 10 characters)"
	messageRequired         = "Required"
)

// Issue codes reported alongside validation messages.
const (
	CodeTooSmall      = "too_small"
	CodeInvalidString = "invalid_string"
	CodeInvalidType   = "invalid_type"
)

// Input is one submitted application before validation.
type Input struct {
	FullName   string
	Email      string
	Phone      string
	Interest   string
	Experience string
	Newsletter bool
}

// Issue is one failed field check.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ValidationError carries every failed field check.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("application has %d invalid fields", len(e.Issues))
}

// Fields maps field names to their first message.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Issues))
	for _, issue := range e.Issues {
		if len(issue.Path) == 0 {
			continue
		}
		if _, ok := out[issue.Path[0]]; !ok {
			out[issue.Path[0]] = issue.Message
		}
	}
	return out
}

type service struct {
	store storage.ApplicationStore
	now   func() time.Time
	newID func() string
}

func newService(deps module.Dependencies) service {
	return service{store: deps.Applications, now: deps.Clock(), newID: uuid.NewString}
}

// submit validates input and persists it, returning the new application id.
func (s service) submit(ctx context.Context, input Input) (string, error) {
	if issues := validate(input); len(issues) > 0 {
		return "", &ValidationError{Issues: issues}
	}
	id := s.newID()
	err := s.store.CreateApplication(ctx, storage.Application{
		ID:         id,
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		Interest:   input.Interest,
		Experience: input.Experience,
		Newsletter: input.Newsletter,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("create application: %w", err)
	}
	return id, nil
}

func validate(input Input) []Issue {
	var issues []Issue
	if utf8.RuneCountInString(input.FullName) < minNameLength {
		issues = append(issues, Issue{Code: CodeTooSmall, Path: []string{"fullName"}, Message: messageNameTooShort})
	}
	if !validEmail(input.Email) {
		issues = append(issues, Issue{Code: CodeInvalidString, Path: []string{"email"}, Message: messageInvalidEmail})
	}
	if utf8.RuneCountInString(input.Interest) < minInterestLength {
		issues = append(issues, Issue{Code: CodeTooSmall, Path: []string{"interest"}, Message: messageInterestTooShort})
	}
	return issues
}

// validEmail accepts a bare addr-spec whose domain has a dot.
func validEmail(value string) bool {
	if value == "" || strings.ContainsAny(value, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	_, domain, ok := strings.Cut(addr.Address, "@")
	return ok && strings.Contains(strings.Trim(domain, "."), ".")
}

var jsonFields = []string{"fullName", "email", "phone", "interest", "experience", "newsletter"}

// decodeJSON reads an application body field by field so type mismatches are
// reported per field rather than failing the whole document.
func decodeJSON(data []byte) (Input, []Issue, error) {
	var raw map[string]json.RawMessage
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil {
		return Input{}, nil, err
	}

	var (
		input  Input
		issues []Issue
	)
	for _, field := range jsonFields {
		value, present := raw[field]
		if present && string(bytes.TrimSpace(value)) == "null" {
			present = false
		}
		switch field {
		case "newsletter":
			if !present {
				issues = append(issues, Issue{Code: CodeInvalidType, Path: []string{field}, Message: messageRequired})
				continue
			}
			if err := json.Unmarshal(value, &input.Newsletter); err != nil {
				issues = append(issues, Issue{Code: CodeInvalidType, Path: []string{field}, Message: "Expected boolean"})
			}
		default:
			if !present {
				if field == "phone" || field == "experience" {
					continue
				}
				issues = append(issues, Issue{Code: CodeInvalidType, Path: []string{field}, Message: messageRequired})
				continue
			}
			var text string
			if err := json.Unmarshal(value, &text); err != nil {
				issues = append(issues, Issue{Code: CodeInvalidType, Path: []string{field}, Message: "Expected string"})
				continue
			}
			input.set(field, text)
		}
	}
	return input, issues, nil
}

func (in *Input) set(field, value string) {
	switch field {
	case "fullName":
		in.FullName = value
	case "email":
		in.Email = value
	case "phone":
		in.Phone = value
	case "interest":
		in.Interest = value
	case "experience":
		in.Experience = value
	}
}
