package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := map[string]struct {
		in   float64
		want string
	}{
		"zero":             {0, "00:00"},
		"two minutes five": {125, "02:05"},
		"fraction":         {59.97, "00:59"},
		"hour":             {3725.4, "01:02:05"},
		"negative":         {-3, "00:00"},
		"nan":              {math.NaN(), "00:00"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.in))
		})
	}
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", ClientIP("203.0.113.7, 10.0.0.1", "10.0.0.2"))
	assert.Equal(t, "10.0.0.2", ClientIP("", "10.0.0.2"))
	assert.Equal(t, "10.0.0.2", ClientIP(" , ", "10.0.0.2"))
	assert.Equal(t, "", ClientIP("", ""))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc"))
	assert.Equal(t, "abc", BearerToken("Bearerabc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestViewKeys(t *testing.T) {
	id := GuestIdentity("198.51.100.4")
	assert.Equal(t, "guest:198.51.100.4", id)
	assert.True(t, IsGuestIdentity(id))
	assert.False(t, IsGuestIdentity("user-1"))
	assert.Equal(t, "view:guest:198.51.100.4:vid", MakeViewKey(id, "vid"))
}
