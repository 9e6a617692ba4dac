package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' || r == '(' || r == ')' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseCoordToken accepts "3,4" as a single token.
func parseCoordToken(token string) *Coord {
	token = strings.Trim(strings.TrimSpace(token), ",")
	parts := strings.Split(token, ",")
	if len(parts) != 2 {
		return nil
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return nil
	}
	return &Coord{X: x, Y: y}
}

// extractCoord pulls the first coordinate out of the token list, accepting
// either "3,4" or two adjacent bare numbers ("3 4", "to 3 4").
func extractCoord(tokens []string) ([]string, *Coord) {
	for i, token := range tokens {
		if c := parseCoordToken(token); c != nil {
			return append(append([]string(nil), tokens[:i]...), tokens[i+1:]...), c
		}
		if i+1 < len(tokens) {
			x, errX := strconv.Atoi(token)
			y, errY := strconv.Atoi(tokens[i+1])
			if errX == nil && errY == nil {
				rest := append(append([]string(nil), tokens[:i]...), tokens[i+2:]...)
				return rest, &Coord{X: x, Y: y}
			}
		}
	}
	return tokens, nil
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "her", "him":
		return true
	default:
		return false
	}
}

// stripFiller drops connective words so "move the scout to 3,4" and
// "move scout 3,4" parse identically.
func stripFiller(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch token {
		case "to", "at", "the", "a", "an", "my", "on", "with", "from":
			continue
		}
		out = append(out, token)
	}
	return out
}
