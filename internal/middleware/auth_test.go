package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/pkg/authenticator"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/logger"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func requestContext(authorization string) context.Context {
	req := httptest.NewRequest("GET", "/getMe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	ctx := context.Background()
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithHTTPRequest(ctx, req)
	return ctx
}

func Test_AuthVerifier_Middleware(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken]("secret", time.Minute)
	token, err := engine.Generate("7", model.AccessToken{UserID: 7})
	require.NoError(t, err)

	otherEngine := authenticator.NewTokenEngine[model.AccessToken]("other-secret", time.Minute)
	foreignToken, err := otherEngine.Generate("7", model.AccessToken{UserID: 7})
	require.NoError(t, err)

	testCases := []struct {
		name          string
		authorization string
		allowUserID   bool
		wantUserID    int64
		wantErr       error
	}{
		{
			name:          "bearer token",
			authorization: "Bearer " + token,
			wantUserID:    7,
		},
		{
			name:          "lowercase scheme",
			authorization: "bearer " + token,
			wantUserID:    7,
		},
		{
			name:          "token signed by another secret",
			authorization: "Bearer " + foreignToken,
			wantErr:       errorx.New(errorx.Unauthenticated, "Invalid or expired access token"),
		},
		{
			name:          "user id when allowed",
			authorization: "12",
			allowUserID:   true,
			wantUserID:    12,
		},
		{
			name:          "user id when not allowed",
			authorization: "12",
			wantErr:       errorx.New(errorx.Unauthenticated, "Invalid authorization header"),
		},
		{
			name:          "non positive user id",
			authorization: "0",
			allowUserID:   true,
			wantErr:       errorx.New(errorx.Unauthenticated, "Invalid authorization header"),
		},
		{
			name:    "missing header",
			wantErr: errorx.New(errorx.Unauthenticated, "You need to authenticate before"),
		},
		{
			name:          "unknown scheme",
			authorization: "Basic dXNlcjpwYXNz",
			allowUserID:   true,
			wantErr:       errorx.New(errorx.Unauthenticated, "Invalid authorization header"),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewAuthVerifier().WithAccessToken(engine)
			if tt.allowUserID {
				verifier.WithUserID()
			}

			ctx, err := verifier.Middleware()(requestContext(tt.authorization))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, ctx)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantUserID, xcontext.RequestUserID(ctx))
		})
	}
}
