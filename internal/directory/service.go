package directory

import (
	"context"
	"errors"

	"event-manager/internal/models"
)

var ErrMissingFields = errors.New("missing required fields")

type DBLayer interface {
	CreateVenue(ctx context.Context, venue *models.Venue) error
	ListVenues(ctx context.Context) ([]models.Venue, error)
	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	ListVendors(ctx context.Context) ([]models.Vendor, error)
}

// Service manages the venue and vendor directories.
type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

func (s *Service) CreateVenue(ctx context.Context, req models.CreateVenueRequest) (int64, error) {
	if req.Name == "" {
		return 0, ErrMissingFields
	}

	venue := &models.Venue{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	}
	if err := s.DB.CreateVenue(ctx, venue); err != nil {
		return 0, err
	}
	return venue.ID, nil
}

func (s *Service) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return s.DB.ListVenues(ctx)
}

func (s *Service) CreateVendor(ctx context.Context, req models.CreateVendorRequest) (int64, error) {
	if req.Name == "" {
		return 0, ErrMissingFields
	}

	vendor := &models.Vendor{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
	}
	if err := s.DB.CreateVendor(ctx, vendor); err != nil {
		return 0, err
	}
	return vendor.ID, nil
}

func (s *Service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.DB.ListVendors(ctx)
}
