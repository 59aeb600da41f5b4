package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
)

// Identity is the credential collaborator: it owns password hashing and
// verification so nothing else in the system ever sees a clear-text
// password next to a stored hash.
type Identity struct {
	users domain.UserRepository
}

func NewIdentity(users domain.UserRepository) *Identity {
	return &Identity{users: users}
}

// VerifyCredentials returns the user when email/password match, or an
// unauthorized error. Unknown email and wrong password are indistinguishable
// to the caller.
func (i *Identity) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := i.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrUnauthorized
	}
	return u, nil
}

// ResetPassword replaces the stored hash for the account with email.
// Fails not-found when no such account exists.
func (i *Identity) ResetPassword(ctx context.Context, email, newPassword string) error {
	u, err := i.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("user")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("hash password", err)
	}
	return i.users.UpdatePassword(ctx, u.ID, string(hash))
}

// HashPassword is exported for account provisioning.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}
