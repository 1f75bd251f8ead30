package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

var errInvalidToken = errors.New("invalid token")

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeID extracts the caller's employee ID from the verified token.
func EmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	id, ok := claims["employee_id"].(string)
	if !ok || id == "" {
		return "", errInvalidToken
	}
	return id, nil
}

// OfficeID extracts the caller's office ID from the verified token.
func OfficeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	id, ok := claims["office_id"].(string)
	if !ok || id == "" {
		return "", errInvalidToken
	}
	return id, nil
}
