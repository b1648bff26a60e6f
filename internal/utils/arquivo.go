package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxNomeArquivo limita o trecho legível do nome dos objetos enviados ao storage
const MaxNomeArquivo = 50

var reNaoPermitido = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizarNomeArquivo converte o nome original de uma foto para kebab-case ASCII.
// Exemplo: "Foto da Serra Mármore (1)" -> "foto-da-serra-marmore-1"
func SanitizarNomeArquivo(nome string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, nome)
	normalized = strings.ToLower(normalized)

	slug := reNaoPermitido.ReplaceAllString(normalized, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxNomeArquivo {
		slug = slug[:MaxNomeArquivo]
		if lastHyphen := strings.LastIndex(slug, "-"); lastHyphen > 0 {
			slug = slug[:lastHyphen]
		}
	}

	return slug
}
