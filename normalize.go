package propcap

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Field normalizers are total functions: unparseable input yields nil/empty,
// never an error or a panic.

var (
	numericJunkRE  = regexp.MustCompile(`[^0-9.\-]`)
	whitespaceRE   = regexp.MustCompile(`\s+`)
	listDelimRE    = regexp.MustCompile(`[,;|•·●・]+`)
	countTokenRE   = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	atCoordsRE     = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	centerCoordsRE = regexp.MustCompile(`center=(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
)

// TrimOrNil trims whitespace and returns nil for an empty result.
// Readers use it so that blank page text never becomes an empty-string field.
func TrimOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// ParseNumber extracts a finite number from free text by stripping every
// character except digits, '.' and '-'. Returns nil if nothing numeric
// remains or the result is not finite.
func ParseNumber(text string) *float64 {
	cleaned := numericJunkRE.ReplaceAllString(text, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// ParseCount extracts a non-negative integer from free text, used for
// occupancy and review counts. Only the first numeric token is considered, so
// surrounding punctuation ("Max. 2 adults") cannot distort the value.
// Returns nil for negative or fractional values.
func ParseCount(text string) *int {
	tok := countTokenRE.FindString(strings.ReplaceAll(text, ",", ""))
	if tok == "" {
		return nil
	}
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil || n < 0 || n != math.Trunc(n) {
		return nil
	}
	c := int(n)
	return &c
}

// NormalizePhone canonicalizes a phone number by stripping everything except
// digits and a leading '+'. Returns nil if nothing remains.
func NormalizePhone(text string) *string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	s := b.String()
	return &s
}

// ParseCoordinatesFromLink extracts a latitude/longitude pair from a map
// hyperlink. It tries a center=<lat>,<lng> query parameter first, then an
// @<lat>,<lng> path pattern. Returns nil unless both components are finite.
func ParseCoordinatesFromLink(href string) *Coordinates {
	if u, err := url.Parse(href); err == nil {
		if center := u.Query().Get("center"); center != "" {
			if c := parseCoordinatePair(center); c != nil {
				return c
			}
		}
	}
	// The query parse can miss encoded or fragment-embedded parameters, so
	// fall back to pattern matching on the raw href.
	if m := centerCoordsRE.FindStringSubmatch(href); m != nil {
		if c := parseCoordinatePair(m[1] + "," + m[2]); c != nil {
			return c
		}
	}
	if m := atCoordsRE.FindStringSubmatch(href); m != nil {
		return parseCoordinatePair(m[1] + "," + m[2])
	}
	return nil
}

func parseCoordinatePair(s string) *Coordinates {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return nil
	}
	latN, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lngN, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil ||
		math.IsNaN(latN) || math.IsInf(latN, 0) ||
		math.IsNaN(lngN) || math.IsInf(lngN, 0) {
		return nil
	}
	return &Coordinates{Latitude: &latN, Longitude: &lngN}
}

// TokenizeList splits free text into short labels: whitespace is collapsed,
// the text is split on the fixed delimiter set (comma, semicolon, bullet
// variants, pipe, tab/newline), tokens are trimmed, empties dropped, and
// duplicates removed preserving first-seen order. A limit of 0 means no cap.
func TokenizeList(text string, limit int) []string {
	collapsed := whitespaceRE.ReplaceAllString(text, " ")
	seen := make(map[string]bool)
	var out []string
	for _, tok := range listDelimRE.Split(collapsed, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// timeOfDayWindow bounds how far after the keyword an hour:minute pattern may
// appear. Keeps "check-in" from matching a time several paragraphs away.
const timeOfDayWindow = 40

// MatchTimeOfDay locates keyword (a regular expression fragment, matched
// case-insensitively) followed within a bounded window by an hour:minute
// pattern, and returns the zero-padded "HH:MM". Returns nil when the keyword
// or a valid time is absent, or when the keyword pattern itself is invalid.
func MatchTimeOfDay(text, keyword string) *string {
	re, err := regexp.Compile(fmt.Sprintf(
		`(?i)%s[^0-9]{0,%d}([01]?[0-9]|2[0-3]):([0-5][0-9])`, keyword, timeOfDayWindow))
	if err != nil {
		return nil
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	s := hour + ":" + m[2]
	return &s
}

// MatchTriState returns true if the positive pattern matches, false if the
// negative pattern matches, and nil otherwise. The positive pattern is
// checked first so a denial phrase elsewhere on the page does not override a
// direct affirmation.
func MatchTriState(text string, positive, negative *regexp.Regexp) *bool {
	if positive != nil && positive.MatchString(text) {
		v := true
		return &v
	}
	if negative != nil && negative.MatchString(text) {
		v := false
		return &v
	}
	return nil
}
