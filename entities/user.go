package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"unique" json:"email"`
	Password string    `json:"-"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`

	Timestamp
}
