package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/lexidev/users-backend/internal/httperr"
	"github.com/lexidev/users-backend/internal/middleware"
	"github.com/lexidev/users-backend/internal/models"
	"github.com/lexidev/users-backend/internal/services"
)

const (
	maxMultipartMemory = 10 << 20 // 10 MB
	pictureFormField   = "profilePicture"
)

type userResponse struct {
	User *models.User `json:"user"`
}

type changePasswordRequest struct {
	OldPassword       string `json:"oldPassword"`
	NewPassword       string `json:"newPassword"`
	ConfirmedPassword string `json:"confirmedPassword"`
}

// GetUser returns the authenticated user's account, password omitted.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httperr.Write(w, httperr.Forbidden("Authentication failed, token missing."))
		return
	}

	user, err := h.accounts.GetAccount(r.Context(), identity.UserID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// UpdateUser applies a partial profile update. The body is either JSON or
// multipart form data with an optional profilePicture file.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httperr.Write(w, httperr.Forbidden("Authentication failed, token missing."))
		return
	}

	var upd services.ProfileUpdate

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			httperr.Write(w, httperr.Validation("Invalid inputs passed, please check your data."))
			return
		}

		upd = services.ProfileUpdate{
			Username:  r.FormValue("username"),
			Firstname: r.FormValue("firstname"),
			Lastname:  r.FormValue("lastname"),
			Phone:     r.FormValue("phone"),
			Email:     r.FormValue("email"),
			Country:   r.FormValue("country"),
			State:     r.FormValue("state"),
			City:      r.FormValue("city"),
			Zip:       r.FormValue("zip"),
		}

		if headers := r.MultipartForm.File[pictureFormField]; len(headers) > 0 {
			url, err := h.uploadPicture(w, r, headers[0])
			if err != nil {
				return // response already written
			}
			upd.ProfilePicture = url
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			httperr.Write(w, httperr.Validation("Invalid inputs passed, please check your data."))
			return
		}
	}

	user, err := h.accounts.UpdateProfile(r.Context(), identity.UserID, upd)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// ChangePassword replaces the caller's password after verifying the old one.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httperr.Write(w, httperr.Forbidden("Authentication failed, token missing."))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("Invalid inputs passed, please check your data."))
		return
	}

	err := h.accounts.ChangePassword(r.Context(), identity.UserID, req.OldPassword, req.NewPassword, req.ConfirmedPassword)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// UploadProfilePicture stores a new profile picture and saves its reference.
func (h *UserHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		httperr.Write(w, httperr.Forbidden("Authentication failed, token missing."))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.Write(w, httperr.Validation("Invalid multipart form"))
		return
	}

	headers := r.MultipartForm.File[pictureFormField]
	if len(headers) == 0 {
		httperr.Write(w, httperr.Validation("No profile picture provided"))
		return
	}

	url, err := h.uploadPicture(w, r, headers[0])
	if err != nil {
		return // response already written
	}

	user, err := h.accounts.UpdateProfile(r.Context(), identity.UserID, services.ProfileUpdate{ProfilePicture: url})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// uploadPicture pushes the file to Cloudinary, writing the error response
// itself on failure so callers can just bail out.
func (h *UserHandler) uploadPicture(w http.ResponseWriter, r *http.Request, header *multipart.FileHeader) (string, error) {
	if h.uploads == nil {
		err := httperr.Internal("File upload service not available")
		httperr.Write(w, err)
		return "", err
	}

	url, err := h.uploads.UploadImage(r.Context(), header)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFileType), errors.Is(err, services.ErrFileTooLarge):
			httperr.Write(w, httperr.Validation(err.Error()))
		default:
			log.Printf("ERROR: profile picture upload failed: %v", err)
			httperr.Write(w, httperr.Internal("Failed to upload profile picture"))
		}
		return "", err
	}
	return url, nil
}
