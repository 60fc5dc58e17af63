package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/router"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// WithRequestID reuses the request id sent by the client or generates one, and
// echoes it in the response headers.
func WithRequestID() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		id := xcontext.HTTPRequest(ctx).Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		if w := xcontext.HTTPWriter(ctx); w != nil {
			w.Header().Set(requestIDHeader, id)
		}

		return xcontext.WithRequestID(ctx, id), nil
	}
}

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		info := fmt.Sprintf("%s | %s", req.Method, req.URL.Path)
		if id := xcontext.RequestID(ctx); id != "" {
			info = fmt.Sprintf("%s | %s", info, id)
		}

		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
