package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.\-]`)

// ParseQty parses quantity cells as channel exports format them:
// "1,234", "１２３" (full-width), NBSP thousands separators, "(3)" for
// negatives. Returns false when nothing numeric is left.
func ParseQty(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	// fold full-width digits and strip separator noise
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '０' && r <= '９':
			return '0' + (r - '０')
		case r == '．':
			return '.'
		case r == '\u00a0', r == '\u202f', r == '\u2009', r == ' ', r == '\u3000', r == '\t', r == ',', r == '，':
			return -1
		}
		return r
	}, s)

	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}
