package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchpoint/internal/auth"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) Create(ctx context.Context, p *Player) (*Player, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Player), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Player), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Player, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Player), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, p *Player) (*Player, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Player), args.Error(1)
}

const testSecret = "test-secret"

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FirstName:                "Ana",
		LastName:                 "Costa",
		Email:                    "ana@example.com",
		Password:                 "password123",
		Phone:                    "+351900000000",
		Birthdate:                "1995-04-02",
		Gender:                   "female",
		SkillTier:                3,
		YearsPlayed:              20,
		HasCompetitiveExperience: true,
	}
}

func TestRegister(t *testing.T) {
	t.Run("success derives the rating", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)
		req := validRegisterRequest()

		repo.On("EmailExists", mock.Anything, req.Email).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Player) bool {
			return p.Email == req.Email &&
				p.Gender == GenderFemale &&
				p.Rating == 56.00 &&
				p.ID != "" &&
				p.PasswordHash != req.Password
		})).Return(&Player{
			ID:     "pl-1",
			Email:  req.Email,
			Rating: 56.00,
		}, nil)

		created, access, refresh, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "pl-1", created.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := auth.ValidateToken(access, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "pl-1", claims.PlayerID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)
		req := validRegisterRequest()

		repo.On("EmailExists", mock.Anything, req.Email).Return(true, nil)

		_, _, _, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown gender", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)
		req := validRegisterRequest()
		req.Gender = "unsure"

		repo.On("EmailExists", mock.Anything, req.Email).Return(false, nil)

		_, _, _, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("bad birthdate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)
		req := validRegisterRequest()
		req.Birthdate = "02/04/1995"

		repo.On("EmailExists", mock.Anything, req.Email).Return(false, nil)

		_, _, _, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("out-of-range external rating", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)
		req := validRegisterRequest()
		bad := 17.0
		req.ExternalRating = &bad

		repo.On("EmailExists", mock.Anything, req.Email).Return(false, nil)

		_, _, _, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidProfile)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	stored := &Player{ID: "pl-1", Email: "ana@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", mock.Anything, stored.Email).Return(stored, nil)

		p, access, refresh, err := svc.Login(context.Background(), LoginRequest{Email: stored.Email, Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "pl-1", p.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", mock.Anything, stored.Email).Return(stored, nil)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{Email: stored.Email, Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrPlayerNotFound)

		_, _, _, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	existing := func() *Player {
		return &Player{
			ID:          "pl-1",
			FirstName:   "Ana",
			LastName:    "Costa",
			Email:       "ana@example.com",
			Birthdate:   time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
			Gender:      GenderFemale,
			SkillTier:   3,
			YearsPlayed: 20,

			HasCompetitiveExperience: true,
			Rating:                   56.00,
		}
	}

	t.Run("name change keeps the rating", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		newName := "Anita"
		repo.On("FindByID", mock.Anything, "pl-1").Return(existing(), nil)
		repo.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *Player) bool {
			return p.FirstName == newName && p.Rating == 56.00
		})).Return(existing(), nil)

		_, err := svc.UpdateProfile(context.Background(), "pl-1", UpdateProfileRequest{FirstName: &newName})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("skill change recomputes the rating", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		ext := 12.00
		repo.On("FindByID", mock.Anything, "pl-1").Return(&Player{
			ID: "pl-1", SkillTier: 1, YearsPlayed: 1, Gender: GenderFemale,
			Birthdate: time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
		}, nil)
		repo.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *Player) bool {
			return p.Rating == 72.73
		})).Return(existing(), nil)

		_, err := svc.UpdateProfile(context.Background(), "pl-1", UpdateProfileRequest{ExternalRating: &ext})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid skill tier is rejected before the store", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		badTier := 4
		repo.On("FindByID", mock.Anything, "pl-1").Return(existing(), nil)

		_, err := svc.UpdateProfile(context.Background(), "pl-1", UpdateProfileRequest{SkillTier: &badTier})
		assert.ErrorIs(t, err, ErrInvalidProfile)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("unknown player", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, testSecret)

		repo.On("FindByID", mock.Anything, "ghost").Return(nil, ErrPlayerNotFound)

		_, err := svc.UpdateProfile(context.Background(), "ghost", UpdateProfileRequest{})
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestRefreshToken(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, testSecret)

	_, refresh, err := auth.GenerateTokens("pl-1", "ana@example.com", testSecret)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, "pl-1").Return(&Player{ID: "pl-1", Email: "ana@example.com"}, nil)

	access, p, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, "pl-1", p.ID)

	claims, err := auth.ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}
