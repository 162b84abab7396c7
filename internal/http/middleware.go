package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type contextKey string

const (
	employeeIDKey contextKey = "employee_id"
	usernameKey   contextKey = "username"
	requestIDKey  contextKey = "request_id"
)

// IdentityMiddleware extracts the caller's employee identity from headers.
// Session mechanics live outside this service; the contract here is only
// "caller has an identity", and an absent one is allowed — such checkouts are
// recorded without an owner.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		if raw := req.Header.Get("X-Employee-Id"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				ctx = context.WithValue(ctx, employeeIDKey, id)
			}
		}
		if username := req.Header.Get("X-Username"); username != "" {
			ctx = context.WithValue(ctx, usernameKey, username)
		}
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(req.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func getEmployeeIDFromContext(ctx context.Context) *int64 {
	if id, ok := ctx.Value(employeeIDKey).(int64); ok {
		return &id
	}
	return nil
}

func getUsernameFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(usernameKey).(string); ok {
		return username
	}
	return ""
}
