// Package validation normalizes user supplied fields. Every function is pure; failures are errs.Error values of
// kind KindValidation carrying a message that can be shown to the caller as is.
package validation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
	"user-directory/app/server/errs"

	"github.com/google/uuid"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,20}$`)
)

const (
	MinNameLen       = 2
	MinPasswordLen   = 6
	MinIdentifierLen = 2
)

const (
	MsgName       = "The name must have at least 2 characters."
	MsgNameReq    = "Name is required."
	MsgEmail      = "Email must be in a valid format."
	MsgEmailReq   = "Email is required."
	MsgUsername   = `Username must be 3-20 characters (letters, numbers, ".", "_" or "-").`
	MsgPassword   = "The password must have at least 6 characters."
	MsgIdentifier = "Username or email not valid"
	MsgObjectID   = "Invalid ID."
)

func Name(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) < MinNameLen {
		return "", errs.Validation(MsgName)
	}
	return trimmed, nil
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func Email(s string) (string, error) {
	if !IsEmail(s) {
		return "", errs.Validation(MsgEmail)
	}
	return strings.ToLower(s), nil
}

// Username returns s unchanged; lowercasing happens when the user is stored.
func Username(s string) (string, error) {
	if !usernamePattern.MatchString(s) {
		return "", errs.Validation(MsgUsername)
	}
	return s, nil
}

// Password only checks the plaintext shape before hashing.
func Password(s string) error {
	if utf8.RuneCountInString(s) < MinPasswordLen {
		return errs.Validation(MsgPassword)
	}
	return nil
}

func Identifier(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) < MinIdentifierLen {
		return "", errs.Validation(MsgIdentifier)
	}
	return trimmed, nil
}

// ObjectID accepts only the canonical 36 character UUID form used for user ids.
func ObjectID(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, errs.Validation(MsgObjectID)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errs.Validation(MsgObjectID)
	}
	return id, nil
}

// Field is a JSON string value that remembers whether its key was present. A present null or a non-string value
// is kept as Set with a nil Value so that validation rejects it instead of treating the key as absent.
type Field struct {
	Set   bool
	Value *string
}

// Present returns a Field holding s.
func Present(s string) Field {
	return Field{Set: true, Value: &s}
}

func (f *Field) UnmarshalJSON(b []byte) error {
	f.Set = true
	f.Value = nil

	var s string
	if err := json.Unmarshal(b, &s); err == nil && !bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Value = &s
	}
	return nil
}

// UserPayload is the name/email part of a request body. Fields whose key was absent are not Set.
type UserPayload struct {
	Name  Field `json:"name"`
	Email Field `json:"email"`
}

// UserFields holds normalized values; only fields that were supplied are set.
type UserFields struct {
	Name  *string
	Email *string
}

func (f UserFields) Empty() bool {
	return f.Name == nil && f.Email == nil
}

// ValidateUserPayload requires both fields unless partial is set, in which case only present keys are checked.
func ValidateUserPayload(p UserPayload, partial bool) (UserFields, error) {
	var out UserFields

	if !partial && !p.Name.Set {
		return UserFields{}, errs.Validation(MsgNameReq)
	}
	if p.Name.Set {
		if p.Name.Value == nil {
			return UserFields{}, errs.Validation(MsgName)
		}
		name, err := Name(*p.Name.Value)
		if err != nil {
			return UserFields{}, err
		}
		out.Name = &name
	}

	if !partial && !p.Email.Set {
		return UserFields{}, errs.Validation(MsgEmailReq)
	}
	if p.Email.Set {
		if p.Email.Value == nil {
			return UserFields{}, errs.Validation(MsgEmail)
		}
		email, err := Email(*p.Email.Value)
		if err != nil {
			return UserFields{}, err
		}
		out.Email = &email
	}

	return out, nil
}
