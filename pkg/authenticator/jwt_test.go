package authenticator_test

import (
	"testing"
	"time"

	"github.com/giftladder/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type accessToken struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[accessToken]("secret", time.Minute)
	token, err := engine.Generate("7", accessToken{ID: 7, Nickname: "alice"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, accessToken{ID: 7, Nickname: "alice"}, obj)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[accessToken]("secret", -time.Minute)
	token, err := engine.Generate("7", accessToken{ID: 7})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine[accessToken]("secret", time.Minute).
		Generate("7", accessToken{ID: 7})
	require.NoError(t, err)

	_, err = authenticator.NewTokenEngine[accessToken]("other", time.Minute).Verify(token)
	require.Error(t, err)
}
