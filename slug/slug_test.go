package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"accents and digits", "Hola Ñandú NASA 2024", "hola-nandu-nasa-2024"},
		{"accented vowels", "Nuevo título con acentos ÁÉÍ", "nuevo-titulo-con-acentos-aei"},
		{"plain ascii", "Drought Patterns", "drought-patterns"},
		{"whitespace runs collapse", "a \t b\n\nc", "a-b-c"},
		{"existing hyphens collapse", "a - b--c", "a-b-c"},
		{"symbols dropped", "sequía: ¿qué pasó?", "sequia-que-paso"},
		{"boundary hyphens trimmed", "-abc-", "abc"},
		{"all symbols yields empty", "¿¿¡¡!!??", ""},
		{"empty input", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.input))
		})
	}
}

func TestMakeOutputShape(t *testing.T) {
	inputs := []string{
		"Hola Ñandú NASA 2024",
		"  leading and trailing  ",
		"--- only hyphens ---",
		"MixedCASE With Ümlauts",
		"日本語のタイトル",
		"tabs\tand\nnewlines",
	}

	for _, input := range inputs {
		got := Make(input)
		if got == "" {
			continue
		}
		assert.Regexp(t, slugShape, got, "input %q", input)
	}
}
