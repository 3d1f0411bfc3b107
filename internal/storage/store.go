// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mverma16/splitbill/internal/models"
)

// SpendingStats is the aggregate view backing the dashboard.
type SpendingStats struct {
	ContactCount  int
	BillCount     int
	TotalSpending float64
}

// Store defines the interface for persistence operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by login name.
	// Returns (nil, nil) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateContact persists a new contact; the ID field is populated.
	CreateContact(ctx context.Context, contact *models.Contact) error

	// GetContact retrieves one of the user's contacts.
	// Returns (nil, nil) when no such contact exists for that user.
	GetContact(ctx context.Context, userID, contactID string) (*models.Contact, error)

	// ListContacts returns the user's contacts, newest first.
	ListContacts(ctx context.Context, userID string) ([]*models.Contact, error)

	// DeleteContact removes a contact and, by cascade, its bill shares.
	DeleteContact(ctx context.Context, userID, contactID string) error

	// CreateBill persists a new bill; the ID field is populated.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves one of the user's bills.
	// Returns (nil, nil) when no such bill exists for that user.
	GetBill(ctx context.Context, userID, billID string) (*models.Bill, error)

	// ListBills returns the user's bills, most recent visit first.
	ListBills(ctx context.Context, userID string) ([]*models.Bill, error)

	// DeleteBill removes a bill and, by cascade, its shares.
	DeleteBill(ctx context.Context, userID, billID string) error

	// GetSpendingStats aggregates counts and total spend for the dashboard.
	GetSpendingStats(ctx context.Context, userID string) (*SpendingStats, error)

	// ReplaceBillShares atomically replaces a bill's shares with the given
	// batch. Partial writes are never observable.
	ReplaceBillShares(ctx context.Context, billID string, shares []models.BillShare) error

	// ListBillShares returns a bill's shares in insertion order.
	ListBillShares(ctx context.Context, billID string) ([]*models.BillShare, error)

	// GetBillShare retrieves the share of one contact on one bill.
	// Returns (nil, nil) when the contact has no share on the bill.
	GetBillShare(ctx context.Context, billID, contactID string) (*models.BillShare, error)

	// Close releases any resources held by the store.
	Close() error
}
