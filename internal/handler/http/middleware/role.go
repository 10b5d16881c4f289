package middleware

import (
	"net/http"

	"github.com/caredomi/homecare-backend-go/internal/domain/user"
	"github.com/caredomi/homecare-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAdmin requires the back-office administrator role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, user.ErrAdminAccessRequired.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, user.ErrAdminAccessRequired.Error())
			return
		}

		if role != string(user.RoleAdmin) {
			response.Forbidden(w, user.ErrAdminAccessRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePlanner requires a role that may manage tours and care plans,
// admin or coordinator.
func RequirePlanner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, user.ErrPlannerAccessRequired.Error())
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, user.ErrPlannerAccessRequired.Error())
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleAdmin && role != user.RoleCoordinator {
			response.Forbidden(w, user.ErrPlannerAccessRequired.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
