package commands

import (
	"strings"
	"time"

	"devis/internal/core/domain/model/kernel"
)

// Policy holds the tunable rules of the lifecycle.
type Policy struct {
	// QuoteValidity is added to the send date when a quote has no validity date.
	QuoteValidity time.Duration

	// MaxClientAbsences flags a request for review once that many absences
	// are recorded. Zero disables the escalation.
	MaxClientAbsences int

	// ConflictAttempts bounds how many times a transition is run when its
	// commit loses a race with another writer.
	ConflictAttempts int

	// ValidationURLBase is the client page a quote links to. Empty leaves
	// the link out of notifications that are not tied to an HTTP call.
	ValidationURLBase string
}

// ValidationURL returns the page where the client validates request id, or
// "" when no base is configured.
func (p Policy) ValidationURL(id kernel.UUID) string {
	if p.ValidationURLBase == "" {
		return ""
	}
	return strings.TrimSuffix(p.ValidationURLBase, "/") + "/" + id.String()
}

func DefaultPolicy() Policy {
	return Policy{
		QuoteValidity:     7 * 24 * time.Hour,
		MaxClientAbsences: 3,
		ConflictAttempts:  3,
	}
}
