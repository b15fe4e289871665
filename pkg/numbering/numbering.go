// Package numbering genera números de factura legibles a partir de un patrón con tokens.
//
// Tokens soportados:
//
//	{YYYY} año con 4 dígitos
//	{YY}   año con 2 dígitos
//	{MM}   mes con 2 dígitos
//	{DD}   día con 2 dígitos
//	{###}  contador con al menos 3 dígitos (1000 -> "1000")
//	{##}   últimos 2 dígitos del contador
//	{#}    contador sin relleno
//
// Cualquier otro texto, incluidas llaves desconocidas, se copia literalmente.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPattern patrón usado cuando el tenant no configuró uno.
const DefaultPattern = "INV{YY}{MM}{DD}-{###}"

type token struct {
	placeholder string
	counter     bool
	render      func(ref time.Time, n int64) string
}

// Los tokens largos van antes que sus prefijos ({YYYY} antes de {YY}, {###} antes de {##}).
var tokens = []token{
	{placeholder: "{YYYY}", render: func(ref time.Time, _ int64) string { return fmt.Sprintf("%04d", ref.Year()) }},
	{placeholder: "{YY}", render: func(ref time.Time, _ int64) string { return fmt.Sprintf("%02d", ref.Year()%100) }},
	{placeholder: "{MM}", render: func(ref time.Time, _ int64) string { return fmt.Sprintf("%02d", int(ref.Month())) }},
	{placeholder: "{DD}", render: func(ref time.Time, _ int64) string { return fmt.Sprintf("%02d", ref.Day()) }},
	{placeholder: "{###}", counter: true, render: func(_ time.Time, n int64) string { return fmt.Sprintf("%03d", n) }},
	{placeholder: "{##}", counter: true, render: func(_ time.Time, n int64) string { return fmt.Sprintf("%02d", n%100) }},
	{placeholder: "{#}", counter: true, render: func(_ time.Time, n int64) string { return strconv.FormatInt(n, 10) }},
}

// Generate expande pattern con la fecha ref y el contador. Todas las apariciones de
// cada token se reemplazan. Es una función pura: mismas entradas, misma salida.
// Un patrón vacío usa DefaultPattern; un contador menor a 1 se trata como 1.
func Generate(pattern string, ref time.Time, counter int64) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if counter < 1 {
		counter = 1
	}
	out := pattern
	for _, t := range tokens {
		if strings.Contains(out, t.placeholder) {
			out = strings.ReplaceAll(out, t.placeholder, t.render(ref, counter))
		}
	}
	return out
}

// HasCounter indica si el patrón incluye algún token de contador.
// Sin contador todas las facturas del mismo día recibirían el mismo número.
func HasCounter(pattern string) bool {
	for _, t := range tokens {
		if t.counter && strings.Contains(pattern, t.placeholder) {
			return true
		}
	}
	return false
}

// Tokens lista los placeholders soportados en orden de evaluación.
func Tokens() []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.placeholder
	}
	return out
}
