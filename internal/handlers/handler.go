package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lexidev/users-backend/internal/services"
)

// UserHandler exposes the account operations over HTTP. uploads may be nil
// when Cloudinary credentials are not configured; picture endpoints then
// report the upload service as unavailable.
type UserHandler struct {
	accounts *services.AccountService
	uploads  *services.CloudinaryService
}

func NewUserHandler(accounts *services.AccountService, uploads *services.CloudinaryService) *UserHandler {
	return &UserHandler{accounts: accounts, uploads: uploads}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
