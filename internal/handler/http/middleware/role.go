package middleware

import (
	"net/http"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireApprover requires the approver role
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, employee.ErrApproverAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, employee.ErrApproverAccessRequired)
			return
		}

		if employee.Role(roleStr) != employee.RoleApprover {
			response.HandleError(w, employee.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
