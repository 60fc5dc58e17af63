package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := router.newContext(w, req)

		if req.Method != method {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.NotImplemented, "Method %s is not allowed", req.Method))
		} else {
			ctx = serve(ctx, router, handler)
		}

		writeResponse(ctx, w)

		for _, closer := range router.closers {
			closer(ctx)
		}
	})
}

func serve[Request, Response any](
	ctx context.Context, router *Router, handler HandlerFunc[Request, Response],
) context.Context {
	for _, middleware := range router.befores {
		next, err := middleware(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}
		ctx = next
	}

	var request Request
	if err := bind(xcontext.HTTPRequest(ctx), &request); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
	}

	resp, err := handler(ctx, &request)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	ctx = xcontext.WithResponse(ctx, resp)
	for _, middleware := range router.afters {
		next, err := middleware(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}
		ctx = next
	}

	return ctx
}

// bind reads the query string of GET requests and the JSON body of the others.
// Query values are weakly typed, so "?room_id=5" fills an int64 field tagged
// `json:"room_id"`.
func bind(req *http.Request, v any) error {
	if req.Method == http.MethodGet {
		params := map[string]any{}
		for key, values := range req.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           v,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(params)
	}

	if req.Body == nil {
		return nil
	}

	err := json.NewDecoder(req.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
