package user

import "time"

// User — учётная запись медработника.
type User struct {
	ID        int
	Login     string
	Password  string // хэш
	CreatedAt time.Time
}

type BaseRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
