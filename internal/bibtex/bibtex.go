// Package bibtex provides text transformations over raw BibTeX entries.
//
// Entries are treated as unstructured text throughout: the fetch layer hands
// over whatever INSPIRE or ADS returned, and these functions rewrite keys,
// trim author lists and pull out fields with targeted regular expressions
// rather than a full BibTeX parser.
package bibtex

import (
	"os"
	"regexp"
	"strings"
)

// entryKeyPattern matches the entry type and key: "@article{old_key,".
var entryKeyPattern = regexp.MustCompile(`(@\w+\s*\{)\s*([^,\s]+)\s*,`)

// authorFieldPattern matches the author field, including multiline values.
var authorFieldPattern = regexp.MustCompile(`(?is)(\s*author\s*=\s*\{)(.+?)(\},?\s*\n)`)

// authorSeparator splits a BibTeX author list on the standard "and".
var authorSeparator = regexp.MustCompile(`\s+and\s+`)

// ReplaceKey rewrites the citation key of the first entry in bibtex to
// newKey, leaving the rest of the entry untouched.
func ReplaceKey(bibtex, newKey string) string {
	loc := entryKeyPattern.FindStringSubmatchIndex(bibtex)
	if loc == nil {
		return bibtex
	}
	// loc[3] is the end of the "@type{" prefix group, loc[1] the end of the
	// whole "@type{key," match.
	return bibtex[:loc[3]] + newKey + "," + bibtex[loc[1]:]
}

// ExtractKey returns the citation key of the first entry in bibtex, or ""
// if no entry header is found.
func ExtractKey(bibtex string) string {
	m := entryKeyPattern.FindStringSubmatch(bibtex)
	if m == nil {
		return ""
	}
	return m[2]
}

// ExtractFields extracts the named field values from a BibTeX entry.
// Both double-quoted and brace-delimited values are handled; field names
// are matched case-insensitively. Fields not present are absent from the
// returned map.
func ExtractFields(bibtex string, fields ...string) map[string]string {
	result := make(map[string]string)
	for _, field := range fields {
		pattern := regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(field) + `\s*=\s*(?:"([^"]+)"|\{([^}]+)\})`)
		m := pattern.FindStringSubmatch(bibtex)
		if m == nil {
			continue
		}
		value := m[1]
		if value == "" {
			value = m[2]
		}
		result[field] = strings.TrimSpace(value)
	}
	return result
}

// ExtractFileKeys scans a .bib file and returns the set of citation keys it
// already contains. A missing file is not an error; it yields an empty set.
func ExtractFileKeys(path string) (map[string]bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	return ExtractKeys(string(content)), nil
}

// ExtractKeys returns the set of citation keys present in BibTeX text.
func ExtractKeys(content string) map[string]bool {
	keys := make(map[string]bool)
	for _, m := range entryKeyPattern.FindAllStringSubmatch(content, -1) {
		keys[m[2]] = true
	}
	return keys
}

// TruncateAuthors trims the author list of a BibTeX entry to maxAuthors,
// appending "and others" when the list was longer. maxAuthors <= 0 disables
// truncation; entries without an author field pass through unchanged.
func TruncateAuthors(bibtex string, maxAuthors int) string {
	if maxAuthors <= 0 {
		return bibtex
	}

	loc := authorFieldPattern.FindStringSubmatchIndex(bibtex)
	if loc == nil {
		return bibtex
	}

	prefix := bibtex[loc[2]:loc[3]]
	authorsStr := bibtex[loc[4]:loc[5]]
	suffix := bibtex[loc[6]:loc[7]]

	var authors []string
	for _, a := range authorSeparator.Split(authorsStr, -1) {
		authors = append(authors, strings.TrimSpace(a))
	}

	if len(authors) <= maxAuthors {
		return bibtex
	}

	truncated := append(authors[:maxAuthors:maxAuthors], "others")
	field := prefix + strings.Join(truncated, " and ") + suffix
	return bibtex[:loc[0]] + field + bibtex[loc[1]:]
}
