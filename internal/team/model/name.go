package model

import (
	"strings"
	"unicode/utf8"
)

const (
	// TeamNameMaxLength is the maximum team name length in runes.
	TeamNameMaxLength = 50
	// TeamDescriptionMaxLength is the maximum description length in runes.
	TeamDescriptionMaxLength = 500
)

// TeamName is a validated, non-empty team name.
type TeamName string

// NewTeamName validates and constructs a team name.
func NewTeamName(s string) (TeamName, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrNameTooShort
	}
	if utf8.RuneCountInString(trimmed) > TeamNameMaxLength {
		return "", ErrNameTooLong
	}
	return TeamName(trimmed), nil
}

// String returns the name as a plain string.
func (n TeamName) String() string {
	return string(n)
}

// TeamDescription is a validated, possibly empty team description.
type TeamDescription string

// NewTeamDescription validates and constructs a team description.
func NewTeamDescription(s string) (TeamDescription, error) {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) > TeamDescriptionMaxLength {
		return "", ErrDescriptionTooLong
	}
	return TeamDescription(trimmed), nil
}

// String returns the description as a plain string.
func (d TeamDescription) String() string {
	return string(d)
}
