package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"event-manager/internal/database"
	"event-manager/internal/models"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type DBLayer interface {
	CreateOrganizer(ctx context.Context, organizer *models.Organizer) error
	GetOrganizerByEmail(ctx context.Context, email string) (*models.Organizer, error)
	CreateAttendee(ctx context.Context, attendee *models.Attendee) error
	GetAttendeeByEmail(ctx context.Context, email string) (*models.Attendee, error)
}

// SessionWriter is the part of the session store the service needs.
type SessionWriter interface {
	Save(ctx context.Context, jti string, ttl time.Duration) error
	Revoke(ctx context.Context, jti string) error
}

// Service implements signup and login for both account types.
type Service struct {
	DB         DBLayer
	Sessions   SessionWriter
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewService(db DBLayer, sessions SessionWriter, secret string, ttl time.Duration, bcryptCost int) *Service {
	return &Service{
		DB:         db,
		Sessions:   sessions,
		JWTSecret:  secret,
		TokenTTL:   ttl,
		BcryptCost: bcryptCost,
	}
}

func (s *Service) SignupOrganizer(ctx context.Context, req models.SignupRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return ErrMissingFields
	}

	hash, err := HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return err
	}

	organizer := &models.Organizer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.DB.CreateOrganizer(ctx, organizer); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *Service) SignupAttendee(ctx context.Context, req models.SignupRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return ErrMissingFields
	}

	hash, err := HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return err
	}

	attendee := &models.Attendee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.DB.CreateAttendee(ctx, attendee); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *Service) LoginOrganizer(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	organizer, err := s.DB.GetOrganizerByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPassword(organizer.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, organizer.ID, RoleOrganizer)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:       organizer.ID,
		Name:     organizer.Name,
		Email:    organizer.Email,
		Phone:    organizer.Phone,
		UserType: RoleOrganizer,
	}
	return user, token, nil
}

func (s *Service) LoginAttendee(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	attendee, err := s.DB.GetAttendeeByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPassword(attendee.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, attendee.ID, RoleAttendee)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:       attendee.ID,
		Name:     attendee.Name,
		Email:    attendee.Email,
		Phone:    attendee.Phone,
		UserType: RoleAttendee,
	}
	return user, token, nil
}

// Logout revokes the session behind the presented token.
func (s *Service) Logout(ctx context.Context, jti string) error {
	if s.Sessions == nil || jti == "" {
		return nil
	}
	return s.Sessions.Revoke(ctx, jti)
}

func (s *Service) issueSession(ctx context.Context, userID int64, role string) (string, error) {
	token, jti, err := IssueToken(s.JWTSecret, userID, role, s.TokenTTL)
	if err != nil {
		return "", err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, jti, s.TokenTTL); err != nil {
			return "", err
		}
	}
	return token, nil
}
