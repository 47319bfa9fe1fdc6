package player

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"matchpoint/internal/db"
)

var ErrPlayerNotFound = errors.New("player not found")

const playerColumns = `
	id, first_name, last_name, email, password_hash, phone, birthdate, gender,
	skill_tier, years_played, has_competitive_experience, external_rating,
	rating, created_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Player) (*Player, error) {
	query := `
		INSERT INTO players (
			id, first_name, last_name, email, password_hash, phone, birthdate, gender,
			skill_tier, years_played, has_competitive_experience, external_rating, rating
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + playerColumns

	var created Player
	err := r.db.GetContext(ctx, &created, query,
		p.ID, p.FirstName, p.LastName, p.Email, p.PasswordHash, p.Phone, p.Birthdate, p.Gender,
		p.SkillTier, p.YearsPlayed, p.HasCompetitiveExperience, p.ExternalRating, p.Rating,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	var p Player
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE email = $1`

	var p Player
	err := r.db.GetContext(ctx, &p, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM players WHERE email = $1)`, email)
}

func (r *repository) UpdateProfile(ctx context.Context, p *Player) (*Player, error) {
	query := `
		UPDATE players
		SET first_name = $2, last_name = $3, phone = $4, birthdate = $5, gender = $6,
			skill_tier = $7, years_played = $8, has_competitive_experience = $9,
			external_rating = $10, rating = $11
		WHERE id = $1
		RETURNING ` + playerColumns

	var updated Player
	err := r.db.GetContext(ctx, &updated, query,
		p.ID, p.FirstName, p.LastName, p.Phone, p.Birthdate, p.Gender,
		p.SkillTier, p.YearsPlayed, p.HasCompetitiveExperience, p.ExternalRating, p.Rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &updated, nil
}
