// Package aasmacros handles the AAS journal-name macros (\apj, \mnras, ...)
// that ADS embeds in exported BibTeX. The macros are defined in the AASTeX
// .sty files; projects that do not load AASTeX need them expanded to plain
// journal names.
package aasmacros

import (
	"os"
	"regexp"
)

// defPattern matches primary definitions: \def\apj{\ref@jnl{ApJ}}.
var defPattern = regexp.MustCompile(`\\def\\(\w+)\{\\ref@jnl\{([^}]+)\}\}`)

// aliasPattern matches alias definitions: \def\alias{\original} or
// \let\alias\original.
var aliasPattern = regexp.MustCompile(`\\(?:def|let)\\(\w+)[{ \\]\\(\w+)\}?`)

// Macros maps macro names (without backslash) to their plain-text journal
// strings, e.g. {"apj": "ApJ", "mnras": "MNRAS"}.
type Macros map[string]string

// Parse extracts macro definitions from .sty file content. Aliases resolve
// to the target's journal string; an alias to an unknown macro is dropped.
func Parse(styContent string) Macros {
	macros := make(Macros)

	for _, m := range defPattern.FindAllStringSubmatch(styContent, -1) {
		macros[m[1]] = m[2]
	}

	for _, m := range aliasPattern.FindAllStringSubmatch(styContent, -1) {
		alias, original := m[1], m[2]
		if _, exists := macros[alias]; !exists {
			if value, ok := macros[original]; ok {
				macros[alias] = value
			}
		}
	}

	return macros
}

// ParseFile reads and parses a .sty file.
func ParseFile(path string) (Macros, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content)), nil
}

// macroUsePattern matches "\name" not followed by another word character, so
// \apj matches inside "{\apj}" but not inside "\apjl".
func macroUsePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\\` + regexp.QuoteMeta(name) + `\b`)
}

// FindUsed returns the subset of macros that appear in the given BibTeX text.
func (m Macros) FindUsed(bibtexText string) Macros {
	used := make(Macros)
	for name, value := range m {
		if macroUsePattern(name).MatchString(bibtexText) {
			used[name] = value
		}
	}
	return used
}

// Expand replaces macro uses in a BibTeX string with their plain-text
// journal names, so {\apj} becomes {ApJ}.
func (m Macros) Expand(bibtex string) string {
	for name, value := range m {
		bibtex = macroUsePattern(name).ReplaceAllString(bibtex, value)
	}
	return bibtex
}
