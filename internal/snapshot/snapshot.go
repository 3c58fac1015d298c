// Package snapshot loads tracker snapshots and narrows them with basic filters.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/schema"
)

// Load reads a snapshot JSON file.
func Load(path string) (*schema.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

// Decode parses snapshot JSON. Unknown fields are ignored so raw tracker
// exports can be used as-is.
func Decode(data []byte) (*schema.Snapshot, error) {
	var snap schema.Snapshot
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot as indented JSON.
func Save(path string, snap *schema.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Resolve returns the snapshot at path, or the demo dataset anchored at
// now truncated to the cache granularity when path is empty.
func Resolve(path string, now time.Time) (*schema.Snapshot, error) {
	if path == "" {
		return Demo(now.Truncate(contract.CacheGranularity)), nil
	}
	return Load(path)
}

// Digest is a stable content hash of the snapshot, used in cache keys.
func Digest(snap *schema.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Filter returns the issues matching every constraint of f, in input order.
func Filter(issues []schema.Issue, f contract.IssueFilter) []schema.Issue {
	if f.IsZero() {
		return issues
	}
	out := make([]schema.Issue, 0, len(issues))
	for _, issue := range issues {
		fields := &issue.Fields
		if f.ProjectKey != "" && fields.Project.Key != f.ProjectKey {
			continue
		}
		if f.IssueType != "" && fields.IssueType.Name != f.IssueType {
			continue
		}
		if f.Status != "" && fields.Status.Name != f.Status {
			continue
		}
		if !f.CreatedAfter.IsZero() && fields.Created.Before(f.CreatedAfter) {
			continue
		}
		if !f.UpdatedAfter.IsZero() && fields.Updated.Before(f.UpdatedAfter) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// Apply returns a shallow copy of the snapshot whose issues pass the filter.
func Apply(snap *schema.Snapshot, f contract.IssueFilter) *schema.Snapshot {
	filtered := *snap
	filtered.Issues = Filter(snap.Issues, f)
	return &filtered
}

// JQL renders the filter as the equivalent tracker query.
func JQL(f contract.IssueFilter) string {
	var parts []string
	if f.ProjectKey != "" {
		parts = append(parts, fmt.Sprintf("project = %q", f.ProjectKey))
	}
	if f.IssueType != "" {
		parts = append(parts, fmt.Sprintf("issuetype = %q", f.IssueType))
	}
	if f.Status != "" {
		parts = append(parts, fmt.Sprintf("status = %q", f.Status))
	}
	if !f.CreatedAfter.IsZero() {
		parts = append(parts, fmt.Sprintf("created >= %q", f.CreatedAfter.Format(time.DateOnly)))
	}
	if !f.UpdatedAfter.IsZero() {
		parts = append(parts, fmt.Sprintf("updated >= %q", f.UpdatedAfter.Format(time.DateOnly)))
	}
	return strings.Join(parts, " AND ")
}
