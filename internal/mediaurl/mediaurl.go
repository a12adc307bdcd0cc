// Package mediaurl repairs the image cells found in shop export files.
// Exports carry anything from JSON blobs over semicolon lists to bare
// platform media identifiers; Resolve reduces each cell to one display
// URL plus a thumbnail variant.
package mediaurl

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Resolved is the repaired image reference for one cell.
type Resolved struct {
	Full  string
	Thumb string
}

const staticMediaBase = "https://static.wixstatic.com/media/"

// mediaFilePattern matches bare platform media filenames: two hex runs
// joined by an underscore, an optional version marker, an image extension.
var mediaFilePattern = regexp.MustCompile(`(?i)^[0-9a-f]{6,}_[0-9a-f]{6,}(~mv2)?\.(jpe?g|png|gif|webp)$`)

const versionMarker = "~mv2"

// jsonCandidateKeys are checked in order when an image cell holds a JSON
// object.
var jsonCandidateKeys = []string{"url", "src", "image", "id"}

// Resolve maps one raw image cell to its display and thumbnail URLs. The
// cell is first reduced to a single candidate (JSON values unwrapped,
// multi-value lists cut to the first entry), then classified: protocol-
// relative values get an https scheme, platform media identifiers become
// static-host URLs with a 400x400 fill thumbnail, and everything else
// passes through unchanged. Empty input resolves to empty output.
func Resolve(raw string) Resolved {
	candidate := sanitize(raw)
	if candidate == "" {
		return Resolved{}
	}
	if strings.HasPrefix(candidate, "//") {
		full := "https:" + candidate
		return Resolved{Full: full, Thumb: full}
	}
	if id := mediaIdentifier(candidate); id != "" {
		return Resolved{Full: staticMediaBase + id, Thumb: thumbnailURL(id)}
	}
	// Complete URLs and unrecognized leftovers pass through verbatim.
	return Resolved{Full: candidate, Thumb: candidate}
}

// sanitize reduces a raw cell to a single candidate value. JSON arrays and
// objects are unwrapped (first element, then the first known key); values
// that fail to parse stay as they are. Multi-value lists keep only their
// first segment.
func sanitize(raw string) string {
	value := strings.TrimSpace(raw)
	if strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{") {
		if extracted, ok := fromJSON(value); ok {
			value = strings.TrimSpace(extracted)
		}
	}
	if idx := strings.IndexAny(value, ";|,"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}

func fromJSON(value string) (string, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return "", false
	}
	if list, ok := parsed.([]any); ok {
		if len(list) == 0 {
			return "", false
		}
		parsed = list[0]
	}
	switch v := parsed.(type) {
	case string:
		return v, true
	case map[string]any:
		for _, key := range jsonCandidateKeys {
			if s, ok := v[key].(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// mediaIdentifier extracts a platform media id from the candidate: either
// the candidate itself is a bare media filename, or one of its URI path
// segments carries the version marker.
func mediaIdentifier(candidate string) string {
	if mediaFilePattern.MatchString(candidate) {
		return candidate
	}
	if !strings.Contains(candidate, versionMarker) {
		return ""
	}
	for _, segment := range strings.Split(candidate, "/") {
		if !strings.Contains(segment, versionMarker) {
			continue
		}
		if idx := strings.IndexAny(segment, "#?"); idx >= 0 {
			segment = segment[:idx]
		}
		return segment
	}
	return ""
}

func thumbnailURL(id string) string {
	return staticMediaBase + id + "/v1/fill/w_400,h_400,al_c,q_80/" + id
}
