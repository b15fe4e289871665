package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturador-api/pkg/numbering"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	ref := date(2025, time.March, 7)

	tests := []struct {
		name    string
		pattern string
		counter int64
		want    string
	}{
		{"patrón por defecto", "INV{YY}{MM}{DD}-{###}", 7, "INV250307-007"},
		{"contador excede el relleno", "{###}", 1000, "1000"},
		{"año completo", "{YYYY}/{#}", 42, "2025/42"},
		{"dos dígitos del contador", "A-{##}", 7, "A-07"},
		{"dos dígitos truncan", "A-{##}", 123, "A-23"},
		{"contador sin relleno", "N{#}", 5, "N5"},
		{"todas las apariciones", "{YY}{YY}-{#}-{#}", 3, "2525-3-3"},
		{"sin tokens", "FIJO", 9, "FIJO"},
		{"token desconocido literal", "{X}-{###}", 1, "{X}-001"},
		{"patrón vacío usa el defecto", "", 12, "INV250307-012"},
		{"contador cero se trata como uno", "{###}", 0, "001"},
		{"contador negativo se trata como uno", "{#}", -4, "1"},
		{"YYYY no se corrompe con YY", "{YYYY}{YY}", 1, "202525"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbering.Generate(tt.pattern, ref, tt.counter))
		})
	}
}

func TestGenerate_Determinista(t *testing.T) {
	ref := date(1999, time.December, 31)
	a := numbering.Generate(numbering.DefaultPattern, ref, 88)
	b := numbering.Generate(numbering.DefaultPattern, ref, 88)
	assert.Equal(t, a, b)
	assert.Equal(t, "INV991231-088", a)
}

func TestGenerate_ContadoresDistintosDanNumerosDistintos(t *testing.T) {
	ref := date(2025, time.January, 1)
	seen := make(map[string]bool)
	for n := int64(1); n <= 2000; n++ {
		got := numbering.Generate(numbering.DefaultPattern, ref, n)
		assert.False(t, seen[got], "número repetido %s", got)
		seen[got] = true
	}
}

func TestHasCounter(t *testing.T) {
	assert.True(t, numbering.HasCounter(numbering.DefaultPattern))
	assert.True(t, numbering.HasCounter("X{#}"))
	assert.True(t, numbering.HasCounter("X{##}"))
	assert.False(t, numbering.HasCounter("INV{YYYY}{MM}"))
	assert.False(t, numbering.HasCounter(""))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"{YYYY}", "{YY}", "{MM}", "{DD}", "{###}", "{##}", "{#}"}, numbering.Tokens())
}
