package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/almoxpro/almox-api/pkg/textutil"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Parafuso":           "parafuso",
		"FITA ISOLANTE":      "fita isolante",
		"Lâmpada Três Fases": "lampada tres fases",
		"Conexão Ø32":        "conexao ø32",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, textutil.Normalize(in), "entrada %q", in)
	}
}
