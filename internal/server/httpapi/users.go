package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookify/internal/common"
	"github.com/dmitrijs2005/bookify/internal/server/models"
	"github.com/dmitrijs2005/bookify/internal/server/services"
	"github.com/dmitrijs2005/bookify/internal/validate"
)

type userDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{Username: u.Username, Email: u.Email}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type validateResponse struct {
	User userDTO `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var ve *validate.Error
		switch {
		case errors.As(err, &ve):
			writeMessage(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, services.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, "Email already in use")
		case errors.Is(err, services.ErrUsernameTaken):
			writeMessage(w, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeMessage(w, http.StatusBadRequest, "Account already exists")
		default:
			s.internalError(w, r, "register failed", err)
		}
		return
	}

	writeMessage(w, http.StatusCreated, "User registered")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var ve *validate.Error
		switch {
		case errors.As(err, &ve):
			writeMessage(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, common.ErrorUnauthorized):
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			s.internalError(w, r, "login failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserDTO(user)})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, validateResponse{User: toUserDTO(userFrom(r.Context()))})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(r.Context(), msg, "error", err)
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}
