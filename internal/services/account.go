// Package services contains the business logic of the account backend. This
// file implements AccountService, which orchestrates signup, login, profile
// updates, and password changes against the user store, the password hasher,
// and the token service.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/semaphore"

	"github.com/lexidev/users-backend/internal/httperr"
	"github.com/lexidev/users-backend/internal/models"
	"github.com/lexidev/users-backend/internal/store"
	"github.com/lexidev/users-backend/pkg/utils"
)

// invalidCredentials is the single message for every login failure so
// responses cannot distinguish unknown emails from wrong passwords.
const invalidCredentials = "Invalid credentials, could not login user"

// PasswordHasher is the hashing contract the service depends on.
// utils.Argon2Hasher is the production implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashedPassword string) (bool, error)
}

type AccountService struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens *TokenService

	// hashSem bounds concurrent Argon2 computations; each one pins 64 MiB,
	// so unbounded hashing under load would starve everything else.
	hashSem *semaphore.Weighted
}

func NewAccountService(users store.UserStore, hasher PasswordHasher, tokens *TokenService, maxConcurrentHashes int64) *AccountService {
	if maxConcurrentHashes <= 0 {
		maxConcurrentHashes = 8
	}
	return &AccountService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		hashSem: semaphore.NewWeighted(maxConcurrentHashes),
	}
}

type SignupInput struct {
	Username          string `json:"username"`
	Firstname         string `json:"firstname"`
	Lastname          string `json:"lastname"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmedPassword string `json:"confirmedPassword"`
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	UserID string
	Email  string
	Token  string
}

// ProfileUpdate carries partial profile fields. An empty string means "leave
// unchanged" — the wire format has no way to express an intentional clear,
// and absent and empty are treated identically on purpose.
type ProfileUpdate struct {
	Username       string `json:"username"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Country        string `json:"country"`
	State          string `json:"state"`
	City           string `json:"city"`
	Zip            string `json:"zip"`
	ProfilePicture string `json:"-"`
}

// Signup validates the input, creates the account, and issues a token.
// The FindByEmail check is only a fast path for a friendly error; the unique
// index on email is the authoritative guard, and a duplicate-key insert from
// a concurrent signup maps to the same conflict.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(in.Email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, httperr.Conflict("User already exists, please login instead")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, httperr.Internal("Signing up failed, please try again")
	}

	digest, err := s.hashPassword(ctx, in.Password)
	if err != nil {
		return nil, httperr.Internal("Could not create user, please try again")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Username:  strings.TrimSpace(in.Username),
		Firstname: strings.TrimSpace(in.Firstname),
		Lastname:  strings.TrimSpace(in.Lastname),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     email,
		Password:  digest,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, httperr.Conflict("User already exists, please login instead")
		}
		return nil, httperr.Internal("Signing up user failed, please try again")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, httperr.Internal("Signing up user failed, please try again")
	}

	return &AuthResult{UserID: user.ID.Hex(), Email: user.Email, Token: token}, nil
}

// Login verifies credentials and issues a fresh token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.Unauthorized(invalidCredentials)
		}
		return nil, httperr.Internal("Login failed, please try again")
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, httperr.Internal("Could not log you in, please check credentials and try again")
	}
	if !ok {
		return nil, httperr.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, httperr.Internal("Login user failed, please try again")
	}

	return &AuthResult{UserID: user.ID.Hex(), Email: user.Email, Token: token}, nil
}

// GetAccount returns the account with the password digest stripped.
func (s *AccountService) GetAccount(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.NotFound("User not found")
		}
		return nil, httperr.Internal("Fetching user failed, please try again later")
	}

	user.Password = ""
	return user, nil
}

// UpdateProfile applies partial-update semantics: only non-empty fields
// overwrite stored values. A provided email or phone must still be valid.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.User, error) {
	if upd.Email != "" {
		if err := utils.ValidateEmail(upd.Email); err != nil {
			return nil, httperr.Validation(err.Error())
		}
	}
	if upd.Phone != "" {
		if err := utils.ValidatePhone(upd.Phone); err != nil {
			return nil, httperr.Validation(err.Error())
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.NotFound("Could not find user for this id.")
		}
		return nil, httperr.Internal("Something went wrong, could not update user.")
	}

	override(&user.Username, upd.Username)
	override(&user.Firstname, upd.Firstname)
	override(&user.Lastname, upd.Lastname)
	override(&user.Phone, upd.Phone)
	override(&user.Email, utils.NormalizeEmail(upd.Email))
	override(&user.Country, upd.Country)
	override(&user.State, upd.State)
	override(&user.City, upd.City)
	override(&user.Zip, upd.Zip)
	override(&user.ProfilePicture, upd.ProfilePicture)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, httperr.NotFound("Could not find user for this id.")
		case errors.Is(err, store.ErrDuplicateEmail):
			return nil, httperr.Conflict("User already exists, please login instead")
		default:
			return nil, httperr.Internal("Something went wrong, could not update user.")
		}
	}

	user.Password = ""
	return user, nil
}

// ChangePassword replaces the stored digest after verifying the old
// password. Outstanding tokens stay valid until natural expiry.
func (s *AccountService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmedPassword string) error {
	if err := utils.ValidatePassword(newPassword); err != nil {
		return httperr.Validation(err.Error())
	}
	if newPassword != confirmedPassword {
		return httperr.Validation("Passwords do not match")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httperr.NotFound("Could not find user for this id.")
		}
		return httperr.Internal("Something went wrong, could not update password.")
	}

	ok, err := s.hasher.Verify(oldPassword, user.Password)
	if err != nil {
		return httperr.Internal("Could not verify old password, please try again.")
	}
	if !ok {
		return httperr.Forbidden("Invalid old password.")
	}

	digest, err := s.hashPassword(ctx, newPassword)
	if err != nil {
		return httperr.Internal("Could not update password, please try again.")
	}

	user.Password = digest
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httperr.NotFound("Could not find user for this id.")
		}
		return httperr.Internal("Something went wrong, could not update password.")
	}
	return nil
}

// hashPassword runs the hasher under the semaphore so a burst of signups
// cannot pile up concurrent Argon2 computations.
func (s *AccountService) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)
	return s.hasher.Hash(password)
}

func validateSignup(in SignupInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return httperr.Validation("Username is required")
	}
	if strings.TrimSpace(in.Firstname) == "" {
		return httperr.Validation("First name is required")
	}
	if strings.TrimSpace(in.Lastname) == "" {
		return httperr.Validation("Last name is required")
	}
	if err := utils.ValidatePhone(in.Phone); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := utils.ValidateEmail(in.Email); err != nil {
		return httperr.Validation(err.Error())
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return httperr.Validation(err.Error())
	}
	if in.Password != in.ConfirmedPassword {
		return httperr.Validation("Passwords do not match")
	}
	return nil
}

// override replaces *dst with v unless v is empty. Empty and absent both
// mean "no change".
func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
