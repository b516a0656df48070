package text2sql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timePattern matches natural 12-hour clock expressions ("10 PM", "9:30am").
var timePattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([AP]M)\b`)

// placeAbbreviations expands common Malaysian regional shorthand before the
// query reaches the model, so "PJ" matches rows stored as "Petaling Jaya".
var placeAbbreviations = map[string]string{
	"KL":   "Kuala Lumpur",
	"PJ":   "Petaling Jaya",
	"JB":   "Johor Bahru",
	"KK":   "Kota Kinabalu",
	"SA":   "Shah Alam",
	"KD":   "Kota Damansara",
	"TTDI": "Taman Tun Dr Ismail",
}

var abbreviationPattern = buildAbbreviationPattern()

func buildAbbreviationPattern() *regexp.Regexp {
	keys := make([]string, 0, len(placeAbbreviations))
	for k := range placeAbbreviations {
		keys = append(keys, k)
	}
	// Longest first so TTDI wins over any shorter overlap.
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if len(keys[j]) > len(keys[i]) {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`)
}

// NormalizeTimes rewrites 12-hour clock expressions to canonical 24-hour
// HH:MM form: 12 AM → 00, 12 PM stays 12, any other PM hour adds 12.
func NormalizeTimes(query string) string {
	return timePattern.ReplaceAllStringFunc(query, func(match string) string {
		groups := timePattern.FindStringSubmatch(match)
		hour, err := strconv.Atoi(groups[1])
		if err != nil || hour > 12 {
			return match
		}
		minute := 0
		if groups[2] != "" {
			minute, _ = strconv.Atoi(groups[2])
		}
		period := strings.ToUpper(groups[3])
		if period == "AM" {
			if hour == 12 {
				hour = 0
			}
		} else if hour != 12 {
			hour += 12
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	})
}

// ExpandAbbreviations replaces known regional abbreviations with their
// canonical place names via the fixed lookup table.
func ExpandAbbreviations(query string) string {
	return abbreviationPattern.ReplaceAllStringFunc(query, func(match string) string {
		if full, ok := placeAbbreviations[strings.ToUpper(match)]; ok {
			return full
		}
		return match
	})
}

// Preprocess applies both rewrites in the order the generator expects.
func Preprocess(query string) string {
	return ExpandAbbreviations(NormalizeTimes(query))
}
