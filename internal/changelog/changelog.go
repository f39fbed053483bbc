// Package changelog parses the release notes shipped with the binary and
// picks out the releases a user has not seen yet.
package changelog

import (
	_ "embed"
	"regexp"
	"strconv"
	"strings"
)

//go:embed CHANGELOG.md
var Content string

// Entry is one release in the changelog.
type Entry struct {
	Version string
	Date    string
	Changes []string
}

// versionRegex matches release headers like "## v0.2.0 (2026-08-11)" or "## 0.2.0"
var versionRegex = regexp.MustCompile(`^##\s+v?(\d+\.\d+\.\d+)(?:\s+\(([^)]+)\))?`)

// Parse extracts releases from markdown, in file order.
func Parse(content string) []Entry {
	var (
		entries []Entry
		current *Entry
	)
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)

		if m := versionRegex.FindStringSubmatch(line); m != nil {
			if current != nil {
				entries = append(entries, *current)
			}
			current = &Entry{Version: m[1], Date: m[2], Changes: []string{}}
			continue
		}

		if current == nil {
			continue
		}
		if change, ok := strings.CutPrefix(line, "- "); ok {
			current.Changes = append(current.Changes, change)
		} else if line != "" && len(current.Changes) > 0 && !strings.HasPrefix(line, "#") {
			// Wrapped bullet
			current.Changes[len(current.Changes)-1] += " " + line
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

// ChangesSince returns the entries newer than lastSeen and no newer than
// current. An empty lastSeen returns only the current release, so a first
// run is not flooded with history.
func ChangesSince(entries []Entry, lastSeen, current string) []Entry {
	var result []Entry
	for _, e := range entries {
		if current != "" && CompareVersions(e.Version, current) > 0 {
			continue
		}
		if lastSeen == "" {
			if current == "" || CompareVersions(e.Version, current) == 0 {
				result = append(result, e)
			}
			continue
		}
		if CompareVersions(e.Version, lastSeen) > 0 {
			result = append(result, e)
		}
	}
	return result
}

// Since parses the embedded changelog and returns what changed between
// lastSeen and current.
func Since(lastSeen, current string) []Entry {
	return ChangesSince(Parse(Content), lastSeen, current)
}

// IsRelease reports whether version looks like a tagged release rather than
// a dev or snapshot build.
func IsRelease(version string) bool {
	v := strings.TrimPrefix(version, "v")
	return versionRegex.MatchString("## " + v)
}

// CompareVersions compares two semantic versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareVersions(a, b string) int {
	aParts := parseVersion(a)
	bParts := parseVersion(b)

	for i := range 3 {
		if aParts[i] < bParts[i] {
			return -1
		}
		if aParts[i] > bParts[i] {
			return 1
		}
	}
	return 0
}

// parseVersion extracts [major, minor, patch], ignoring pre-release suffixes
func parseVersion(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	parts := strings.Split(v, ".")
	var result [3]int
	for i := 0; i < 3 && i < len(parts); i++ {
		result[i], _ = strconv.Atoi(parts[i])
	}
	return result
}
