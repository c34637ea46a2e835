package handlers

import (
	"errors"
	"net/http"

	"github.com/rmazouri/bankcore/internal/apperrors"
	"github.com/rmazouri/bankcore/internal/handlers/render"
	"github.com/rmazouri/bankcore/internal/logger"
)

func handleRegister(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		FullName string `json:"full_name" validate:"required,min=2,max=100"`
		Password string `json:"password" validate:"required,min=8"`
	}
	type response struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, token, err := authService.Register(r.Context(), data.Email, data.FullName, data.Password)

		switch {
		case err == nil:
			render.JSONWithStatus(w, response{Token: token, User: toUserResponse(user)}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		default:
			l.Error("Failed to register user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleLogin(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, token, err := authService.Login(r.Context(), data.Email, data.Password)

		switch {
		case err == nil:
			render.JSON(w, response{Token: token, User: toUserResponse(user)})
		case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrUserInactive):
			render.ServiceError(w, "Invalid email or password", http.StatusUnauthorized)
		default:
			l.Error("Failed to login user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleMe() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromRequest(w, r)
		if !ok {
			return
		}
		render.JSON(w, toUserResponse(user))
	})
}
