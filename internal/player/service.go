package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"matchpoint/internal/auth"
	"matchpoint/internal/metrics"
	"matchpoint/internal/rating"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProfile     = errors.New("invalid profile fields")
)

const birthdateLayout = "2006-01-02"

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Player, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Player, string, string, error)
	GetByID(ctx context.Context, playerID string) (*Player, error)
	UpdateProfile(ctx context.Context, playerID string, req UpdateProfileRequest) (*Player, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Player, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Player, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	gender, err := ParseGender(req.Gender)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	birthdate, err := time.Parse(birthdateLayout, req.Birthdate)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: bad birthdate %q", ErrInvalidProfile, req.Birthdate)
	}

	score, err := rating.Rate(rating.Inputs{
		SkillTier:                req.SkillTier,
		YearsPlayed:              req.YearsPlayed,
		HasCompetitiveExperience: req.HasCompetitiveExperience,
		ExternalRating:           req.ExternalRating,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	metrics.RecordRatingRecomputation()

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	p := &Player{
		ID:                       uuid.NewString(),
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		Email:                    req.Email,
		PasswordHash:             passwordHash,
		Phone:                    req.Phone,
		Birthdate:                birthdate,
		Gender:                   gender,
		SkillTier:                req.SkillTier,
		YearsPlayed:              req.YearsPlayed,
		HasCompetitiveExperience: req.HasCompetitiveExperience,
		ExternalRating:           req.ExternalRating,
		Rating:                   score,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, "", "", err
	}
	metrics.RecordPlayerRegistered()

	accessToken, refreshToken, err := auth.GenerateTokens(created.ID, created.Email, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return created, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Player, string, string, error) {
	p, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(p.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(p.ID, p.Email, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return p, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, playerID string) (*Player, error) {
	return s.repo.FindByID(ctx, playerID)
}

func (s *service) UpdateProfile(ctx context.Context, playerID string, req UpdateProfileRequest) (*Player, error) {
	p, err := s.repo.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse(birthdateLayout, *req.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad birthdate %q", ErrInvalidProfile, *req.Birthdate)
		}
		p.Birthdate = birthdate
	}
	if req.Gender != nil {
		gender, err := ParseGender(*req.Gender)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		p.Gender = gender
	}
	if req.SkillTier != nil {
		p.SkillTier = *req.SkillTier
	}
	if req.YearsPlayed != nil {
		p.YearsPlayed = *req.YearsPlayed
	}
	if req.HasCompetitiveExperience != nil {
		p.HasCompetitiveExperience = *req.HasCompetitiveExperience
	}
	if req.ExternalRating != nil {
		p.ExternalRating = req.ExternalRating
	}

	// Skill inputs changed: the derived rating must follow.
	if req.touchesSkill() {
		score, err := rating.Rate(rating.Inputs{
			SkillTier:                p.SkillTier,
			YearsPlayed:              p.YearsPlayed,
			HasCompetitiveExperience: p.HasCompetitiveExperience,
			ExternalRating:           p.ExternalRating,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		p.Rating = score
		metrics.RecordRatingRecomputation()
	}

	return s.repo.UpdateProfile(ctx, p)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Player, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	p, err := s.repo.FindByID(ctx, claims.PlayerID)
	if err != nil {
		return "", nil, ErrPlayerNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(p.ID, p.Email, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, p, nil
}
