package player

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var playerColumnNames = []string{
	"id", "first_name", "last_name", "email", "password_hash", "phone", "birthdate", "gender",
	"skill_tier", "years_played", "has_competitive_experience", "external_rating",
	"rating", "created_at",
}

func playerRow(id string) []driver.Value {
	birthdate := time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "Ana", "Costa", "ana@example.com", "hashed", "+351900000000", birthdate, 2,
		3, 20, true, nil,
		56.00, time.Now(),
	}
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	p := &Player{
		ID:        "pl-1",
		FirstName: "Ana",
		LastName:  "Costa",
		Email:     "ana@example.com",

		PasswordHash:             "hashed",
		Phone:                    "+351900000000",
		Birthdate:                time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
		Gender:                   GenderFemale,
		SkillTier:                3,
		YearsPlayed:              20,
		HasCompetitiveExperience: true,
		Rating:                   56.00,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO players")).
		WithArgs(p.ID, p.FirstName, p.LastName, p.Email, p.PasswordHash, p.Phone, p.Birthdate, p.Gender,
			p.SkillTier, p.YearsPlayed, p.HasCompetitiveExperience, nil, p.Rating).
		WillReturnRows(sqlmock.NewRows(playerColumnNames).AddRow(playerRow("pl-1")...))

	created, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, "pl-1", created.ID)
	require.Equal(t, GenderFemale, created.Gender)
	require.Equal(t, 56.00, created.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM players WHERE id = $1")).
		WithArgs("pl-1").
		WillReturnRows(sqlmock.NewRows(playerColumnNames).AddRow(playerRow("pl-1")...))

	p, err := repo.FindByID(context.Background(), "pl-1")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", p.Email)

	mock.ExpectQuery(regexp.QuoteMeta("FROM players WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(playerColumnNames))

	_, err = repo.FindByID(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestRepositoryFindByEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM players WHERE email = $1")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows(playerColumnNames).AddRow(playerRow("pl-1")...))

	p, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "pl-1", p.ID)
}

func TestRepositoryEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM players WHERE email = $1)")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRepositoryUpdateProfile(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	p := &Player{
		ID:        "pl-1",
		FirstName: "Anita",
		LastName:  "Costa",
		Phone:     "+351900000000",
		Birthdate: time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC),
		Gender:    GenderFemale,

		SkillTier:                3,
		YearsPlayed:              20,
		HasCompetitiveExperience: true,
		Rating:                   56.00,
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE players")).
		WithArgs(p.ID, p.FirstName, p.LastName, p.Phone, p.Birthdate, p.Gender,
			p.SkillTier, p.YearsPlayed, p.HasCompetitiveExperience, nil, p.Rating).
		WillReturnRows(sqlmock.NewRows(playerColumnNames).AddRow(playerRow("pl-1")...))

	updated, err := repo.UpdateProfile(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, "pl-1", updated.ID)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE players")).
		WithArgs("ghost", p.FirstName, p.LastName, p.Phone, p.Birthdate, p.Gender,
			p.SkillTier, p.YearsPlayed, p.HasCompetitiveExperience, nil, p.Rating).
		WillReturnRows(sqlmock.NewRows(playerColumnNames))

	p.ID = "ghost"
	_, err = repo.UpdateProfile(context.Background(), p)
	require.ErrorIs(t, err, ErrPlayerNotFound)
}
