package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID      uuid.UUID `db:"user_id"`
	BreweryID   string    `db:"brewery_id"`
	Rating      int       `db:"rating"` // 1-5
	Description string    `db:"description"`
}
