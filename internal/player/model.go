package player

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gender is a closed enumeration stored as its numeric code. The external
// representation is the string label; the mapping below is total and
// validated at the boundary.
type Gender int

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderOther  Gender = 3
)

var genderLabels = map[Gender]string{
	GenderMale:   "male",
	GenderFemale: "female",
	GenderOther:  "other",
}

var labelGenders = map[string]Gender{
	"male":   GenderMale,
	"female": GenderFemale,
	"other":  GenderOther,
}

func ParseGender(label string) (Gender, error) {
	g, ok := labelGenders[label]
	if !ok {
		return 0, fmt.Errorf("unknown gender %q", label)
	}
	return g, nil
}

func (g Gender) String() string {
	return genderLabels[g]
}

func (g Gender) Valid() bool {
	_, ok := genderLabels[g]
	return ok
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseGender(label)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

type Player struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        string    `db:"phone" json:"phone"`
	Birthdate    time.Time `db:"birthdate" json:"birthdate"`
	Gender       Gender    `db:"gender" json:"gender"`

	SkillTier                int      `db:"skill_tier" json:"skill_tier"`
	YearsPlayed              int      `db:"years_played" json:"years_played"`
	HasCompetitiveExperience bool     `db:"has_competitive_experience" json:"has_competitive_experience"`
	ExternalRating           *float64 `db:"external_rating" json:"external_rating,omitempty"`

	Rating    float64   `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Age returns full years elapsed since the birthdate.
func (p *Player) Age(now time.Time) int {
	age := now.Year() - p.Birthdate.Year()
	if now.Month() < p.Birthdate.Month() ||
		(now.Month() == p.Birthdate.Month() && now.Day() < p.Birthdate.Day()) {
		age--
	}
	return age
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
	Birthdate string `json:"birthdate" binding:"required"`
	Gender    string `json:"gender" binding:"required"`

	SkillTier                int      `json:"skill_tier" binding:"required,min=1,max=3"`
	YearsPlayed              int      `json:"years_played" binding:"min=0"`
	HasCompetitiveExperience bool     `json:"has_competitive_experience"`
	ExternalRating           *float64 `json:"external_rating,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Player       Player `json:"player"`
}

// UpdateProfileRequest carries a partial update; nil fields are untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Birthdate *string `json:"birthdate,omitempty"`
	Gender    *string `json:"gender,omitempty"`

	SkillTier                *int     `json:"skill_tier,omitempty"`
	YearsPlayed              *int     `json:"years_played,omitempty"`
	HasCompetitiveExperience *bool    `json:"has_competitive_experience,omitempty"`
	ExternalRating           *float64 `json:"external_rating,omitempty"`
}

// touchesSkill reports whether the update changes any rating input.
func (r UpdateProfileRequest) touchesSkill() bool {
	return r.SkillTier != nil || r.YearsPlayed != nil ||
		r.HasCompetitiveExperience != nil || r.ExternalRating != nil
}
