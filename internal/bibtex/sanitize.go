package bibtex

import "strings"

// unicodeReplacer maps Unicode characters that show up in ADS and INSPIRE
// exports to their LaTeX escapes. Covers the accented Latin letters common
// in author names plus the typographic marks both services emit.
var unicodeReplacer = strings.NewReplacer(
	"á", `\'{a}`, "à", "\\`{a}", "â", `\^{a}`, "ä", `\"{a}`, "ã", `\~{a}`, "å", `\r{a}`,
	"Á", `\'{A}`, "À", "\\`{A}", "Â", `\^{A}`, "Ä", `\"{A}`, "Ã", `\~{A}`, "Å", `\r{A}`,
	"é", `\'{e}`, "è", "\\`{e}", "ê", `\^{e}`, "ë", `\"{e}`,
	"É", `\'{E}`, "È", "\\`{E}", "Ê", `\^{E}`, "Ë", `\"{E}`,
	"í", `\'{i}`, "ì", "\\`{i}", "î", `\^{i}`, "ï", `\"{i}`,
	"Í", `\'{I}`, "Ì", "\\`{I}", "Î", `\^{I}`, "Ï", `\"{I}`,
	"ó", `\'{o}`, "ò", "\\`{o}", "ô", `\^{o}`, "ö", `\"{o}`, "õ", `\~{o}`, "ø", `\o{}`,
	"Ó", `\'{O}`, "Ò", "\\`{O}", "Ô", `\^{O}`, "Ö", `\"{O}`, "Õ", `\~{O}`, "Ø", `\O{}`,
	"ú", `\'{u}`, "ù", "\\`{u}", "û", `\^{u}`, "ü", `\"{u}`,
	"Ú", `\'{U}`, "Ù", "\\`{U}", "Û", `\^{U}`, "Ü", `\"{U}`,
	"ý", `\'{y}`, "ÿ", `\"{y}`, "Ý", `\'{Y}`,
	"ñ", `\~{n}`, "Ñ", `\~{N}`,
	"ç", `\c{c}`, "Ç", `\c{C}`,
	"ğ", `\u{g}`, "Ğ", `\u{G}`, "ş", `\c{s}`, "Ş", `\c{S}`,
	"č", `\v{c}`, "Č", `\v{C}`, "š", `\v{s}`, "Š", `\v{S}`, "ž", `\v{z}`, "Ž", `\v{Z}`,
	"ł", `\l{}`, "Ł", `\L{}`, "ß", `\ss{}`,
	"æ", `\ae{}`, "Æ", `\AE{}`, "œ", `\oe{}`, "Œ", `\OE{}`,
	"–", "--", "—", "---",
	"‘", "`", "’", "'", "“", "``", "”", "''",
	" ", "~",
)

// Sanitize replaces non-ASCII characters in a BibTeX entry with their LaTeX
// escapes where a mapping exists. Characters without a mapping pass through
// unchanged.
func Sanitize(bibtex string) string {
	return unicodeReplacer.Replace(bibtex)
}
