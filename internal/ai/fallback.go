package ai

import "strings"

// Spanish stop words and generic platform terms excluded from fallback
// keyword extraction. "proyecto" is noise here: every search on this
// platform is about projects.
var stopWords = map[string]bool{
	"a": true, "al": true, "algo": true, "aplicacion": true, "app": true,
	"busca": true, "buscar": true, "busco": true, "como": true, "con": true,
	"de": true, "del": true, "el": true, "en": true, "es": true, "este": true,
	"esta": true, "hecha": true, "hecho": true, "la": true, "las": true,
	"lo": true, "los": true, "me": true, "mi": true, "necesito": true,
	"o": true, "para": true, "por": true, "proyecto": true, "proyectos": true,
	"que": true, "quiero": true, "se": true, "sobre": true, "tipo": true,
	"tipos": true, "u": true, "un": true, "una": true, "unas": true,
	"uno": true, "unos": true, "usando": true, "y": true,
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// FallbackKeywords tokenizes a search query locally when no model is
// available: lowercase, accents stripped, punctuation dropped, stop words
// removed. No synonym expansion.
func FallbackKeywords(query string) []string {
	normalized := accentReplacer.Replace(strings.ToLower(query))

	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	keywords := make([]string, 0, len(tokens))
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if len(tok) < 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
	}
	return keywords
}
