package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minWaist = 24
	maxWaist = 48
)

var (
	waistPattern      = regexp.MustCompile(`[0-9]{2}[Ww]?`)
	dualWaistPattern  = regexp.MustCompile(`[0-9]{2}/[0-9]{2}`)
	letterSizePattern = regexp.MustCompile(`(?i)\b(XXXL|XXL|XL|XS|2XL|3XL|S|M|L)\b`)
)

// ExtractSize returns the size for a record. A non-empty size column wins;
// otherwise the product name is mined with the waist, dual-waist and letter
// patterns in that order.
func ExtractSize(direct, name string) string {
	if v := strings.TrimSpace(direct); v != "" {
		return v
	}
	return sizeFromName(name)
}

func sizeFromName(name string) string {
	if v := findWaist(name); v != "" {
		return v
	}
	if v := findDualWaist(name); v != "" {
		return v
	}
	if m := letterSizePattern.FindString(name); m != "" {
		return strings.ToUpper(m)
	}
	return ""
}

// findWaist picks the first standalone two-digit number in the waist range,
// keeping an attached W suffix. Any such number counts, so unrelated
// numbers in a name (house numbers, "Edition 28") are read as sizes too.
func findWaist(name string) string {
	for _, loc := range waistPattern.FindAllStringIndex(name, -1) {
		if !standalone(name, loc[0], loc[1]) {
			continue
		}
		token := name[loc[0]:loc[1]]
		if inWaistRange(strings.TrimRight(token, "Ww")) {
			return strings.ToUpper(token)
		}
	}
	return ""
}

func findDualWaist(name string) string {
	for _, loc := range dualWaistPattern.FindAllStringIndex(name, -1) {
		if !standalone(name, loc[0], loc[1]) {
			continue
		}
		token := name[loc[0]:loc[1]]
		waist, inseam, ok := strings.Cut(token, "/")
		if ok && inWaistRange(waist) && inWaistRange(inseam) {
			return token
		}
	}
	return ""
}

func inWaistRange(digits string) bool {
	n, err := strconv.Atoi(digits)
	return err == nil && n >= minWaist && n <= maxWaist
}

// standalone reports whether the match at [start,end) is not embedded in a
// longer number, a word, or a slashed pair.
func standalone(s string, start, end int) bool {
	if start > 0 && joinsToken(s[start-1]) {
		return false
	}
	if end < len(s) && joinsToken(s[end]) {
		return false
	}
	return true
}

func joinsToken(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b == '_' || b == '/':
		return true
	}
	return false
}
