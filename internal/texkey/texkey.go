// Package texkey classifies citation keys and extracts them from LaTeX source.
package texkey

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a citation key by its apparent origin.
type Kind int

const (
	// KindUnknown means the key matched neither known format. Callers
	// should treat unknown keys as INSPIRE-style and let the lookup decide.
	KindUnknown Kind = iota
	// KindADSBibcode means the key looks like an ADS bibcode.
	KindADSBibcode
	// KindInspireKey means the key looks like an INSPIRE texkey.
	KindInspireKey
)

func (k Kind) String() string {
	switch k {
	case KindADSBibcode:
		return "ads-bibcode"
	case KindInspireKey:
		return "inspire-key"
	default:
		return "unknown"
	}
}

// ADS bibcodes are 19-character codes: 4-digit year, journal abbreviation,
// volume, page, author initial (e.g. 2016PhRvL.116f1102A). The length floor
// rejects short coincidental matches.
var adsBibcodePattern = regexp.MustCompile(`^\d{4}[A-Za-z&.]+\..*[A-Z]$`)

// minBibcodeLen guards against short strings that happen to match the pattern.
const minBibcodeLen = 15

// INSPIRE texkeys are Surname:YYYYxx(x) with a 2-3 letter lowercase
// disambiguator (e.g. Maldacena:1997re).
var inspireKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]+:\d{4}[a-z]{2,3}$`)

// IsADSBibcode reports whether key looks like an ADS bibcode. This is a
// heuristic, not authoritative: ADS never published a strict grammar for
// legacy bibcodes.
func IsADSBibcode(key string) bool {
	return len(key) >= minBibcodeLen && adsBibcodePattern.MatchString(key)
}

// IsInspireKey reports whether key looks like an INSPIRE texkey.
func IsInspireKey(key string) bool {
	return inspireKeyPattern.MatchString(key)
}

// Classify returns the apparent kind of a citation key.
func Classify(key string) Kind {
	switch {
	case IsADSBibcode(key):
		return KindADSBibcode
	case IsInspireKey(key):
		return KindInspireKey
	default:
		return KindUnknown
	}
}

// citePattern matches all natbib-style citation commands: \cite{}, \citep{},
// \citet{}, \citealt{}, \Citep{}, \citeauthor{}, etc., including optional
// arguments like \citep[e.g.][]{key}.
var citePattern = regexp.MustCompile(`\\[Cc]ite[a-zA-Z]*(?:\[[^\]]*\])*\{([^}]+)\}`)

// ExtractCiteKeys extracts citation keys from LaTeX source. Keys appearing
// in a single \cite{a,b,c} command are split on commas. Empty keys and keys
// without a colon produce warnings instead of entries; name labels the
// source in warning messages (typically the file path).
func ExtractCiteKeys(content, name string) (keys []string, warnings []string) {
	for _, m := range citePattern.FindAllStringSubmatch(content, -1) {
		for _, key := range strings.Split(m[1], ",") {
			key = strings.TrimSpace(key)
			switch {
			case key == "":
				warnings = append(warnings, fmt.Sprintf("%s: empty citation key found", name))
			case !strings.Contains(key, ":") && !IsADSBibcode(key):
				warnings = append(warnings, fmt.Sprintf("%s: skipping key %q (not an INSPIRE/ADS key)", name, key))
			default:
				keys = append(keys, key)
			}
		}
	}
	return keys, warnings
}

// Unique removes duplicate keys while preserving first-seen order.
func Unique(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	var out []string
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
