package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/db/models"
)

// UserDTO exposes safe account data in API responses.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserDTO holds creation-time data for a new account.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Name         *string
}

// FromModel maps the persisted user into a DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Name:         c.Name,
		IsActive:     true,
	}
}
