package models

import "github.com/uptrace/bun"

type Vendor struct {
	bun.BaseModel `bun:"table:vendors"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name,notnull" json:"name"`
	Email       string `bun:"email" json:"email"`
	Phone       string `bun:"phone" json:"phone"`
	ServiceType string `bun:"service_type" json:"service_type"`
}

type CreateVendorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ServiceType string `json:"service_type"`
}
