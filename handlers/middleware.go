package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/authorization"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func jsonResponse(object interface{}, w http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(resp)
}

// claimsFromRequest pulls the caller's identity from the bearer token.
// Returns nil when no valid token is attached.
func claimsFromRequest(req *http.Request) *domain.Claims {
	bearer := req.Header.Get("Authorization")
	if bearer == "" {
		return nil
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return nil
	}

	token := authorization.GetToken(bearerToken[1])
	if token == nil {
		return nil
	}

	claims, err := authorization.GetClaims(token.Bytes())
	if err != nil {
		return nil
	}
	return claims
}
