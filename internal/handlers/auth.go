package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lexidev/users-backend/internal/httperr"
	"github.com/lexidev/users-backend/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by both signup and login.
type authResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

// Signup handles user registration.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("Invalid user input, please check your input data"))
		return
	}

	result, err := h.accounts.Signup(r.Context(), req)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		UserID:  result.UserID,
		Email:   result.Email,
		Token:   result.Token,
	})
}

// Login handles credential verification.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("Invalid user input, please check your input data"))
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		UserID:  result.UserID,
		Email:   result.Email,
		Token:   result.Token,
	})
}
