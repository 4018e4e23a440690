package schedule

import "time"

// Policy agrupa las perillas de tiempo de la operación.
type Policy struct {
	Duration time.Duration
	Buffer   time.Duration
	MinGap   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Duration: DefaultDuration,
		Buffer:   DefaultBuffer,
		MinGap:   DefaultMinGap,
	}
}

// Normalize reemplaza valores negativos por cero y una duración nula por la default.
func (p Policy) Normalize() Policy {
	if p.Duration <= 0 {
		p.Duration = DefaultDuration
	}
	if p.Buffer < 0 {
		p.Buffer = 0
	}
	if p.MinGap < 0 {
		p.MinGap = 0
	}
	return p
}

func (p Policy) Window(date, clock *time.Time) Window {
	return WindowFor(date, clock, p.Normalize().Duration)
}

func (p Policy) Collides(a, b Window) bool {
	n := p.Normalize()
	return Collides(a, b, n.Buffer, n.MinGap)
}

// Collides decide si dos eventos no pueden ser cubiertos por la misma persona.
// Un Window vacío siempre choca: sin horario no hay forma de descartar el traslape.
func Collides(a, b Window, buffer, minGap time.Duration) bool {
	if a.Empty() || b.Empty() {
		return true
	}
	if buffer < 0 {
		buffer = 0
	}
	if minGap < 0 {
		minGap = 0
	}

	aStart, aEnd := a.Start.Add(-buffer), a.End.Add(buffer)
	bStart, bEnd := b.Start.Add(-buffer), b.End.Add(buffer)

	// traslape con colchón
	if aStart.Before(bEnd) && bStart.Before(aEnd) {
		return true
	}

	// separación real (sin colchón) entre el que termina antes y el que empieza después
	var gap time.Duration
	if !a.End.After(b.Start) {
		gap = b.Start.Sub(a.End)
	} else {
		gap = a.Start.Sub(b.End)
	}
	return gap < minGap
}
