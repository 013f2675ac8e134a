// Package executive picks the effective top performer of a ranked view,
// passing over an administrative placeholder entity.
package executive

import (
	"fmt"
	"strings"
)

// Notice records that the sentinel technically ranked first in a view.
type Notice struct {
	View     string `json:"view"`
	Sentinel string `json:"sentinel"`
	Message  string `json:"message"`
}

// Selection is the outcome for one view. Found is false for an empty view.
type Selection[T any] struct {
	View        string  `json:"view"`
	Effective   T       `json:"effective"`
	Reported    T       `json:"reported"`
	Substituted bool    `json:"substituted"`
	Found       bool    `json:"found"`
	Notice      *Notice `json:"notice,omitempty"`
}

// Select returns the effective top performer of ranked. When the first entry is
// the sentinel (case-insensitive) the second entry is shown instead and a
// notice is attached; with no second entry the sentinel stays effective.
func Select[T any](view string, ranked []T, sentinel string, name func(T) string) Selection[T] {
	sel := Selection[T]{View: view}
	if len(ranked) == 0 {
		return sel
	}
	sel.Found = true
	sel.Reported = ranked[0]
	sel.Effective = ranked[0]

	if !isSentinel(name(ranked[0]), sentinel) {
		return sel
	}
	sel.Notice = &Notice{
		View:     view,
		Sentinel: name(ranked[0]),
		Message:  fmt.Sprintf("%s ranked first in the %s view", name(ranked[0]), view),
	}
	if len(ranked) > 1 {
		sel.Effective = ranked[1]
		sel.Substituted = true
	}
	return sel
}

func isSentinel(name, sentinel string) bool {
	s := strings.TrimSpace(sentinel)
	return s != "" && strings.EqualFold(strings.TrimSpace(name), s)
}
