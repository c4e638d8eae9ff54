package models

import "github.com/uptrace/bun"

type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Location string `bun:"location" json:"location"`
	Capacity int    `bun:"capacity" json:"capacity"`
}

type CreateVenueRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}
