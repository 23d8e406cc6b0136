package routes

import (
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWKS_URL", "")

	token, err := issueToken(42)
	require.NoError(t, err)

	kf, err := tokenKeyfunc()
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, kf)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	userID, ok := subjectID(claims)
	assert.True(t, ok)
	assert.EqualValues(t, 42, userID)
}

func TestSubjectID(t *testing.T) {
	id, ok := subjectID(jwt.MapClaims{"sub": float64(7)})
	assert.True(t, ok)
	assert.EqualValues(t, 7, id)

	id, ok = subjectID(jwt.MapClaims{"sub": "15"})
	assert.True(t, ok)
	assert.EqualValues(t, 15, id)

	_, ok = subjectID(jwt.MapClaims{"sub": "not-a-number"})
	assert.False(t, ok)

	_, ok = subjectID(jwt.MapClaims{})
	assert.False(t, ok)
}

func TestRemoteJWKSConcurrentInit(t *testing.T) {
	// An unreachable key server: every caller must get an error back, and
	// concurrent first requests must not race on the cached key set.
	t.Setenv("JWKS_URL", "http://127.0.0.1:1/jwks.json")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := tokenKeyfunc()
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.Error(t, err)
	}

	// A failed fetch is not cached; the key set stays unset for a retry.
	jwksMu.Lock()
	assert.Nil(t, jwks)
	jwksMu.Unlock()
}
