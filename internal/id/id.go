// Package id generates identifiers for stored entities.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for NanoID based identifiers.
const (
	PrefixSmartTag = "stag"
	PrefixEmployee = "emp"
	PrefixCompany  = "co"
)

// Generate creates a prefixed NanoID, e.g. "stag-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Document returns a random UUID for an archived document.
func Document() string {
	return uuid.NewString()
}
