package auth

// Claims es lo que el servicio de sesiones dice del usuario.
type Claims struct {
	UserID   string
	Username string
	Role     string // admin | editor
}

func (c Claims) IsAdmin() bool {
	return c.Role == "admin"
}
