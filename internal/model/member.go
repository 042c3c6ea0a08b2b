package model

import (
	"time"

	"github.com/google/uuid"
)

// Member - карточка клиента зала. Минимум полей: абонементы и записи
// на занятия ссылаются сюда по ID.
type Member struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
}
