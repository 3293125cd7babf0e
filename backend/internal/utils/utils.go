// Package utils holds the input validators and text sanitising used by the services.
package utils

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/desichan/desichan/shared/errors"
)

const (
	MaxTitleLen   = 200
	MaxContentLen = 10_000
	MaxReasonLen  = 500

	MinUsernameLen = 3
	MaxUsernameLen = 32
	MinPasswordLen = 8
	// bcrypt ignores everything past 72 bytes
	MaxPasswordBytes = 72
)

var strict = bluemonday.StrictPolicy()

// SanitizeText strips all markup and returns plain text with surrounding whitespace trimmed.
// Entities produced by the policy are unescaped again, the API serves JSON and clients escape on render.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func checkLength(field, s string, maxLen int) error {
	if s == "" {
		return errors.Validation(field + " is required")
	}
	if utf8.RuneCountInString(s) > maxLen {
		return errors.Validation(field + " is too long")
	}
	return nil
}

type PostValidator struct{}

func (PostValidator) Title(title string) error {
	return checkLength("Title", title, MaxTitleLen)
}

func (PostValidator) Content(content string) error {
	return checkLength("Content", content, MaxContentLen)
}

type CommentValidator struct{}

func (CommentValidator) Content(content string) error {
	return checkLength("Content", content, MaxContentLen)
}

type ReportValidator struct{}

func (ReportValidator) Reason(reason string) error {
	return checkLength("Reason", reason, MaxReasonLen)
}

type CredentialsValidator struct{}

func (CredentialsValidator) Username(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLen {
		return errors.Validation("Username is too short")
	}
	if n > MaxUsernameLen {
		return errors.Validation("Username is too long")
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return errors.Validation("Username may contain only letters, digits, '_' and '-'")
		}
	}
	return nil
}

func (CredentialsValidator) Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return errors.Validation("Password is too short")
	}
	if len(password) > MaxPasswordBytes {
		return errors.Validation("Password is too long")
	}
	return nil
}
