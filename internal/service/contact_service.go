package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mverma16/splitbill/internal/models"
	"github.com/mverma16/splitbill/internal/storage"
)

// ContactService manages a user's saved payees.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a new ContactService.
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// Create saves a new contact for the user.
func (s *ContactService) Create(ctx context.Context, userID, name, countryCode, whatsappNumber string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("contact name is required")
	}
	whatsappNumber = strings.TrimSpace(whatsappNumber)
	if whatsappNumber == "" {
		return nil, validationf("whatsapp number is required")
	}

	contact := &models.Contact{
		UserID:         userID,
		Name:           name,
		CountryCode:    countryCode,
		WhatsAppNumber: whatsappNumber,
	}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	slog.Info("Contact created", "user_id", userID, "contact_id", contact.ID)
	return contact, nil
}

// List returns the user's contacts, newest first.
func (s *ContactService) List(ctx context.Context, userID string) ([]*models.Contact, error) {
	return s.store.ListContacts(ctx, userID)
}

// Delete removes a contact and its bill shares.
func (s *ContactService) Delete(ctx context.Context, userID, contactID string) error {
	contact, err := s.store.GetContact(ctx, userID, contactID)
	if err != nil {
		return fmt.Errorf("failed to look up contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact %s: %w", contactID, ErrNotFound)
	}

	if err := s.store.DeleteContact(ctx, userID, contactID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	slog.Info("Contact deleted", "user_id", userID, "contact_id", contactID)
	return nil
}
