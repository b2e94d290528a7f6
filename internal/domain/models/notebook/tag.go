package notebook

import (
	"time"
)

type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     *string   `json:"color" db:"color"` // #RRGGBB or NULL
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
