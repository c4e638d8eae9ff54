package directory

import (
	"context"

	"event-manager/internal/models"

	"github.com/uptrace/bun"
)

// DB holds the venue and vendor lookup tables.
type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateVenue(ctx context.Context, venue *models.Venue) error {
	_, err := d.Bun.NewInsert().Model(venue).Exec(ctx)
	return err
}

func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues := make([]models.Venue, 0)
	err := d.Bun.NewSelect().
		Model(&venues).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (d *DB) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	_, err := d.Bun.NewInsert().Model(vendor).Exec(ctx)
	return err
}

func (d *DB) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	vendors := make([]models.Vendor, 0)
	err := d.Bun.NewSelect().
		Model(&vendors).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return vendors, nil
}
