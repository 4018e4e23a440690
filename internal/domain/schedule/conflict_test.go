package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, hhmm string) Window {
	t.Helper()
	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	c, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return WindowFor(&d, &c, DefaultDuration)
}

func TestWindowFor_CombinaFechaYHora(t *testing.T) {
	d := time.Date(2025, 3, 14, 23, 59, 0, 0, time.FixedZone("x", -6*3600))
	c := time.Date(0, 1, 1, 9, 30, 15, 0, time.UTC)

	w := WindowFor(&d, &c, 2*time.Hour)
	require.False(t, w.Empty())
	assert.Equal(t, time.Date(2025, 3, 14, 9, 30, 15, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 14, 11, 30, 15, 0, time.UTC), w.End)
}

func TestWindowFor_SinFechaOHora_EsVacio(t *testing.T) {
	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.True(t, WindowFor(nil, &d, DefaultDuration).Empty())
	assert.True(t, WindowFor(&d, nil, DefaultDuration).Empty())
	assert.True(t, WindowFor(nil, nil, DefaultDuration).Empty())
}

func TestCollides_Ejemplos(t *testing.T) {
	p := DefaultPolicy()
	a := at(t, "09:00")

	cases := []struct {
		name string
		b    Window
		want bool
	}{
		{"traslape directo", at(t, "10:00"), true},
		{"separados por mas de min gap", at(t, "13:00"), false},
		{"traslape dentro del colchon", at(t, "11:30"), true},
		{"mismo horario", at(t, "09:00"), true},
		{"antes del evento con espacio", at(t, "06:00"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Collides(a, tc.b))
			assert.Equal(t, tc.want, p.Collides(tc.b, a), "debe ser simétrico")
		})
	}
}

func TestCollides_MinGapSinTraslape(t *testing.T) {
	a := at(t, "09:00") // 09:00-11:00
	b := at(t, "11:30") // 11:30-13:30

	// sin colchón no hay traslape, pero 30m < 45m
	assert.True(t, Collides(a, b, 0, 45*time.Minute))
	assert.False(t, Collides(a, b, 0, 30*time.Minute))
	assert.False(t, Collides(a, b, 0, 0))
}

func TestCollides_VacioSiempreChoca(t *testing.T) {
	a := at(t, "09:00")

	assert.True(t, Collides(a, Window{}, 0, 0))
	assert.True(t, Collides(Window{}, a, 0, 0))
	assert.True(t, Collides(Window{}, Window{}, 0, 0))
}

func TestCollides_ValoresNegativosCuentanComoCero(t *testing.T) {
	a := at(t, "09:00")
	b := at(t, "12:00")

	assert.Equal(t, Collides(a, b, 0, 0), Collides(a, b, -time.Hour, -time.Hour))

	p := Policy{Duration: -1, Buffer: -time.Minute, MinGap: -time.Minute}.Normalize()
	assert.Equal(t, DefaultDuration, p.Duration)
	assert.Zero(t, p.Buffer)
	assert.Zero(t, p.MinGap)
}
