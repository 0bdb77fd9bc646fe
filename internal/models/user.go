package models

// User represents a user in the system
type User struct {
	ID           int64  `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Not serialized
}
