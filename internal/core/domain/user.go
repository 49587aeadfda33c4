package domain

import "time"

// User models a registered customer or administrator.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"isAdmin"`
	Street       string    `json:"street"`
	Apartment    string    `json:"apartment"`
	Zip          string    `json:"zip"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the identity a token issued for u would carry.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, IsAdmin: u.IsAdmin}
}
