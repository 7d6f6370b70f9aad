package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPriority = errors.New("invalid priority")

// Priority is the closed set of todo priorities.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists every valid priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority matches token exactly against the enumeration.
func ParsePriority(token string) (Priority, error) {
	candidate := Priority(token)
	for _, p := range Priorities {
		if p == candidate {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of LOW, MEDIUM, HIGH)", ErrInvalidPriority, token)
}

func (p Priority) IsZero() bool {
	return p == ""
}

// MarshalJSON writes the unset priority as null.
func (p Priority) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(p))
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPriority, err)
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		*p = ""
		return nil
	}
	parsed, err := ParsePriority(*raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
