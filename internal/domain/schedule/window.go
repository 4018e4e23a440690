package schedule

import "time"

const (
	DefaultDuration = 120 * time.Minute
	DefaultBuffer   = 20 * time.Minute
	DefaultMinGap   = 45 * time.Minute
)

// Window es el intervalo [Start, End) que ocupa un evento.
// Un Window vacío significa que no hay fecha u hora suficientes para calcularlo.
type Window struct {
	Start time.Time
	End   time.Time
	valid bool
}

func (w Window) Empty() bool {
	return !w.valid
}

// WindowFor combina la fecha civil de date con la hora del día de clock
// y le suma duration. Si falta alguno de los dos, regresa un Window vacío.
func WindowFor(date, clock *time.Time, duration time.Duration) Window {
	if date == nil || clock == nil {
		return Window{}
	}
	if duration < 0 {
		duration = 0
	}

	y, m, d := date.Date()
	h, mi, s := clock.Clock()
	start := time.Date(y, m, d, h, mi, s, 0, time.UTC)

	return Window{
		Start: start,
		End:   start.Add(duration),
		valid: true,
	}
}
