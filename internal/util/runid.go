// Package util holds small shared helpers.
package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewRunID returns a short unique identifier for one invocation, attached to
// log lines so a supervisor can correlate output across runs.
func NewRunID() string {
	id := uuid.NewString()
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
