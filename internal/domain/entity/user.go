package entity

import "time"

// User é um operador do sistema (autenticação por email + senha bcrypt).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
}
