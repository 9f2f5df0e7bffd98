package model

import "encoding/json"

// AdminUser is the signed-in operator as reported by the backend at login.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionData is what the session store persists between restarts.
type SessionData struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}

func (s SessionData) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *SessionData) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
