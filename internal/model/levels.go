package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Level bands group school levels for pricing and matching.
const (
	BandPrimary   = "primary"
	BandSecondary = "secondary"
	BandJC        = "jc"
	BandOther     = "other"
)

var (
	primaryRe   = regexp.MustCompile(`^(?:p|pri|primary)\s*([1-6])$`)
	secondaryRe = regexp.MustCompile(`^(?:s|sec|secondary)\s*([1-5])$`)
	jcRe        = regexp.MustCompile(`^(?:jc|j)\s*([12])$`)
)

// otherLevels are accepted as-is (after case folding).
var otherLevels = map[string]string{
	"ib":         "IB",
	"igcse":      "IGCSE",
	"poly":       "Poly",
	"adult":      "Adult",
	"pre-school": "Pre-school",
	"preschool":  "Pre-school",
}

// NormalizeLevel turns free-form input like "p5", "Sec 3" or "jc1" into
// the canonical label ("Primary 5", "Sec 3", "JC1").
func NormalizeLevel(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), " ")
	if m := primaryRe.FindStringSubmatch(s); m != nil {
		return "Primary " + m[1], true
	}
	if m := secondaryRe.FindStringSubmatch(s); m != nil {
		return "Sec " + m[1], true
	}
	if m := jcRe.FindStringSubmatch(s); m != nil {
		return "JC" + m[1], true
	}
	if label, ok := otherLevels[s]; ok {
		return label, true
	}
	return "", false
}

// LevelBand returns the band of a canonical level label.
func LevelBand(level string) string {
	switch {
	case strings.HasPrefix(level, "Primary"):
		return BandPrimary
	case strings.HasPrefix(level, "Sec"):
		return BandSecondary
	case strings.HasPrefix(level, "JC"):
		return BandJC
	default:
		return BandOther
	}
}

// Levels lists every canonical level, used for form options.
func Levels() []string {
	levels := make([]string, 0, 16)
	for i := 1; i <= 6; i++ {
		levels = append(levels, fmt.Sprintf("Primary %d", i))
	}
	for i := 1; i <= 5; i++ {
		levels = append(levels, fmt.Sprintf("Sec %d", i))
	}
	return append(levels, "JC1", "JC2", "IB", "IGCSE")
}
