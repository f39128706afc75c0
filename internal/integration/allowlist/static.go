// Package allowlist provides the identity allowlist consulted at signup.
package allowlist

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ddu-connect/backend/internal/application/adapter"
)

// Static is an immutable, in-memory allowlist of student IDs.
type Static struct {
	ids map[string]struct{}
}

// file is the on-disk YAML layout.
type file struct {
	StudentIDs []string `yaml:"student_ids"`
}

// NewStatic creates an allowlist from the given IDs. Blank entries are ignored.
func NewStatic(ids []string) *Static {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return &Static{ids: set}
}

// LoadFile reads a YAML allowlist with a top-level student_ids list.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowlist file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML allowlist document.
func Parse(data []byte) (*Static, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse allowlist: %w", err)
	}
	return NewStatic(f.StudentIDs), nil
}

// Contains reports whether studentID is on the allowlist. Matching is exact.
func (s *Static) Contains(studentID string) bool {
	_, ok := s.ids[studentID]
	return ok
}

// Len returns the number of allowlisted IDs.
func (s *Static) Len() int {
	return len(s.ids)
}

var _ adapter.IdentityAllowlist = (*Static)(nil)
