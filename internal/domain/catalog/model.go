package catalog

import "time"

// Person es un delegado designado (no necesariamente funcionario).
type Person struct {
	ID       int64
	Name     string
	Title    string
	Phone    string
	Email    string
	Unit     string
	GenderID *int64

	ParticularName  string
	ParticularTitle string
	ParticularPhone string

	Active    bool
	CreatedAt time.Time
}

// Official es quien convoca un evento y también puede cubrirlo como delegado.
type Official struct {
	ID       int64
	Name     string
	Title    string
	Phone    string
	GenderID *int64

	ParticularName  string
	ParticularTitle string
	ParticularPhone string

	Active    bool
	CreatedAt time.Time
}

type Gender struct {
	ID   int64
	Name string
}

type Party struct {
	ID   int64
	Name string
}

// ListFilter aplica a personas y funcionarios.
type ListFilter struct {
	Query      string
	ActiveOnly bool
	Limit      int
}

var DefaultGenders = []string{"Hombre", "Mujer", "No especificado"}

var DefaultParties = []string{"MORENA", "PAN", "PRI", "PRD", "MC", "PVEM", "INDEPENDIENTE"}
