package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/pkg/authenticator"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/router"
	"github.com/giftladder/backend/pkg/xcontext"
)

type AuthVerifier struct {
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
	allowUserID       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithAccessToken accepts an "Authorization: Bearer <jwt>" header.
func (a *AuthVerifier) WithAccessToken(engine authenticator.TokenEngine[model.AccessToken]) *AuthVerifier {
	a.accessTokenEngine = engine
	return a
}

// WithUserID accepts a bare numeric user id as Authorization header. It is
// only meant for development.
func (a *AuthVerifier) WithUserID() *AuthVerifier {
	a.allowUserID = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		authorization := strings.TrimSpace(xcontext.HTTPRequest(ctx).Header.Get("Authorization"))
		if authorization == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		if a.accessTokenEngine != nil {
			if scheme, token, found := strings.Cut(authorization, " "); found && strings.EqualFold(scheme, "Bearer") {
				info, err := a.accessTokenEngine.Verify(strings.TrimSpace(token))
				if err != nil {
					xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
					return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
				}

				return xcontext.WithRequestUserID(ctx, info.UserID), nil
			}
		}

		if a.allowUserID {
			userID, err := strconv.ParseInt(authorization, 10, 64)
			if err == nil && userID > 0 {
				return xcontext.WithRequestUserID(ctx, userID), nil
			}
		}

		return nil, errorx.New(errorx.Unauthenticated, "Invalid authorization header")
	}
}
