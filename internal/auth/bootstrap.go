package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mverma16/splitbill/internal/models"
)

// EnsureAdmin creates the default admin account if it does not exist yet.
// It runs once at process start and is idempotent: a second start with the
// account already present is a no-op.
func EnsureAdmin(ctx context.Context, storage UserStorage, username, password string) error {
	existing, err := storage.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashed),
		IsAdmin:      true,
		CreatedAt:    time.Now().Unix(),
	}
	if err := storage.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Info("Default admin account created", "username", username)
	return nil
}
