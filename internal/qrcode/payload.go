// Package qrcode gera e interpreta o conteúdo dos QR codes colados nas ferramentas.
//
// Formatos aceitos:
//
//	tool-{patrimonio}-{unixMillis}-{indice}   etiqueta gerada no cadastro
//	tool-{patrimonio}-{unixMillis}            etiqueta de uma unidade única
//	tool-{id}                                 etiqueta antiga, só com o id
package qrcode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Prefixo obrigatório de todo payload
const Prefixo = "tool-"

// ErrPayloadInvalido indica um QR code que não pertence ao sistema
var ErrPayloadInvalido = errors.New("QR code inválido")

var (
	// o instante tem sempre 13 dígitos (milissegundos desde 2001) e o índice até 3
	reEtiqueta = regexp.MustCompile(`^(.+)-(\d{13})(?:-(\d{1,3}))?$`)
	reID       = regexp.MustCompile(`^\d+$`)
)

// Referencia é o resultado da interpretação de um payload.
// Apenas um dos campos Patrimonio ou FerramentaID é preenchido.
type Referencia struct {
	Patrimonio   string
	FerramentaID int64
	Instante     time.Time
	Indice       int
}

// GerarPayload monta o conteúdo do QR code de uma unidade
func GerarPayload(patrimonio string, instante time.Time, indice int) string {
	return fmt.Sprintf("%s%s-%d-%d", Prefixo, patrimonio, instante.UnixMilli(), indice)
}

// GerarPayloadLegado monta o formato antigo, usado quando a unidade não tem QR code salvo
func GerarPayloadLegado(id int64) string {
	return Prefixo + strconv.FormatInt(id, 10)
}

// Interpretar extrai do payload o único patrimônio ou id que ele pode representar.
// Payloads fora dos formatos conhecidos são rejeitados em vez de adivinhados.
func Interpretar(payload string) (Referencia, error) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, Prefixo) {
		return Referencia{}, ErrPayloadInvalido
	}
	resto := strings.TrimPrefix(payload, Prefixo)
	if resto == "" {
		return Referencia{}, ErrPayloadInvalido
	}

	if reID.MatchString(resto) && len(resto) < 13 {
		id, err := strconv.ParseInt(resto, 10, 64)
		if err != nil || id <= 0 {
			return Referencia{}, ErrPayloadInvalido
		}
		return Referencia{FerramentaID: id}, nil
	}

	m := reEtiqueta.FindStringSubmatch(resto)
	if m == nil {
		return Referencia{}, ErrPayloadInvalido
	}

	millis, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Referencia{}, ErrPayloadInvalido
	}
	ref := Referencia{
		Patrimonio: m[1],
		Instante:   time.UnixMilli(millis),
	}
	if m[3] != "" {
		ref.Indice, _ = strconv.Atoi(m[3])
	}
	return ref, nil
}
