package handlers

import (
	"net/http"

	"github.com/rmazouri/bankcore/internal/handlers/render"
	"github.com/rmazouri/bankcore/internal/handlers/userctx"
	"github.com/rmazouri/bankcore/internal/models"
)

// userFromRequest extracts the authenticated user set by the auth
// middleware. A miss means broken wiring, not a client mistake.
func userFromRequest(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
	return user, ok
}
