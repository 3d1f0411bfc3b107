package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mverma16/splitbill/internal/models"
)

// CreateContact persists a new contact, filling in defaults for the country
// code and avatar when the caller left them empty.
func (s *SQLiteStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt == 0 {
		contact.CreatedAt = time.Now().Unix()
	}
	if contact.CountryCode == "" {
		contact.CountryCode = models.DefaultCountryCode
	}
	if contact.Avatar == "" {
		contact.Avatar = models.DefaultAvatar
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, user_id, name, country_code, whatsapp_number, avatar, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.UserID, contact.Name, contact.CountryCode,
		contact.WhatsAppNumber, contact.Avatar, contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetContact retrieves one of the user's contacts.
func (s *SQLiteStore) GetContact(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	contact := &models.Contact{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, country_code, whatsapp_number, avatar, created_at
		 FROM contacts WHERE id = ? AND user_id = ?`,
		contactID, userID,
	).Scan(&contact.ID, &contact.UserID, &contact.Name, &contact.CountryCode,
		&contact.WhatsAppNumber, &contact.Avatar, &contact.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Contact not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// ListContacts returns the user's contacts, newest first.
func (s *SQLiteStore) ListContacts(ctx context.Context, userID string) ([]*models.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, country_code, whatsapp_number, avatar, created_at
		 FROM contacts WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.UserID, &contact.Name, &contact.CountryCode,
			&contact.WhatsAppNumber, &contact.Avatar, &contact.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

// DeleteContact removes a contact; its bill shares cascade away.
func (s *SQLiteStore) DeleteContact(ctx context.Context, userID, contactID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM contacts WHERE id = ? AND user_id = ?",
		contactID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact not found: %s", contactID)
	}

	return nil
}
