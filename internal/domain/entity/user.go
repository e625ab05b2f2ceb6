package entity

import "time"

// User representa un usuario del back-office (actor autenticado).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
