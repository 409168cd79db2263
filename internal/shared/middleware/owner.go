package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

// OwnerIDKey is the context key under which the authenticated owner's ID
// is stored for downstream handlers.
const OwnerIDKey contextKey = "ownerID"

// Owner resolves the calling owner from the X-Owner-ID header and stores
// it in the request context. Identity verification happens upstream (at
// the gateway); this layer only scopes data access.
func Owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := strconv.ParseInt(r.Header.Get("X-Owner-ID"), 10, 64)
		if err != nil || ownerID <= 0 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), OwnerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
