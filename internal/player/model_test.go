package player

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenderJSON(t *testing.T) {
	for label, gender := range labelGenders {
		data, err := json.Marshal(gender)
		require.NoError(t, err)
		assert.Equal(t, `"`+label+`"`, string(data))

		var parsed Gender
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, gender, parsed)
	}

	var g Gender
	err := json.Unmarshal([]byte(`"unsure"`), &g)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`2`), &g)
	assert.Error(t, err)
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("male")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, g)
	assert.True(t, g.Valid())

	_, err = ParseGender("Male")
	assert.Error(t, err)
	assert.False(t, Gender(0).Valid())
}

func TestPlayerJSONHidesPasswordHash(t *testing.T) {
	p := Player{
		ID:           "pl-1",
		Email:        "ana@example.com",
		PasswordHash: "secret-hash",
		Gender:       GenderFemale,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")
	assert.Contains(t, string(data), `"gender":"female"`)
}

func TestPlayerAge(t *testing.T) {
	p := Player{Birthdate: time.Date(1995, 4, 2, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 31, p.Age(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, p.Age(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, p.Age(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)))
}
