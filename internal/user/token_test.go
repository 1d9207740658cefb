package user_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/printshop/internal/user"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := user.NewTokenManager("test-secret", time.Hour)
	userID := uuid.Must(uuid.NewV4())

	token, err := tm.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestTokenManager_Parse_Invalid(t *testing.T) {
	tm := user.NewTokenManager("test-secret", time.Hour)
	userID := uuid.Must(uuid.NewV4())

	t.Run("wrong_secret", func(t *testing.T) {
		other := user.NewTokenManager("other-secret", time.Hour)
		token, err := other.Issue(userID)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		assert.ErrorIs(t, err, user.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := user.NewTokenManager("test-secret", -time.Minute)
		token, err := shortLived.Issue(userID)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		assert.ErrorIs(t, err, user.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.Parse("not.a.token")
		assert.ErrorIs(t, err, user.ErrInvalidToken)
	})
}
