package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMunicipalities_Canonical(t *testing.T) {
	m := EdomexMunicipalities()
	require.Equal(t, 125, m.Len())

	cases := map[string]string{
		"Toluca":                    "Toluca",
		"  toluca ":                 "Toluca",
		"NEZAHUALCOYOTL":            "Nezahualcóyotl",
		"naucalpan   de  juarez":    "Naucalpan de Juárez",
		"Acambay de Ruiz Castaneda": "Acambay de Ruíz Castañeda",
		"atizapan":                  "Atizapán",
	}
	for in, want := range cases {
		got, ok := m.Canonical(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestMunicipalities_Desconocido(t *testing.T) {
	m := EdomexMunicipalities()

	_, ok := m.Canonical("Guadalajara")
	assert.False(t, ok)

	_, ok = m.Canonical("   ")
	assert.False(t, ok)

	var nilList *Municipalities
	_, ok = nilList.Canonical("Toluca")
	assert.False(t, ok)
}

func TestMunicipalities_NamesEsCopia(t *testing.T) {
	m := NewMunicipalities([]string{"Toluca", "toluca", "Metepec"})
	require.Equal(t, []string{"Metepec", "Toluca"}, m.Names())

	names := m.Names()
	names[0] = "X"
	assert.Equal(t, "Metepec", m.Names()[0])
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "7221234567", DigitsOnly("(722) 123-45 67"))
	assert.Equal(t, "", DigitsOnly("sin teléfono"))
}
