package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mverma16/splitbill/internal/models"
)

// ReplaceBillShares atomically replaces a bill's shares with the given batch.
// Splitting the same bill again overwrites the previous split; readers never
// observe a partial write.
func (s *SQLiteStore) ReplaceBillShares(ctx context.Context, billID string, shares []models.BillShare) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bill_shares WHERE bill_id = ?", billID); err != nil {
		return fmt.Errorf("failed to clear previous shares: %w", err)
	}

	now := time.Now().Unix()
	for i := range shares {
		share := &shares[i]
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		if share.SharedAt == 0 {
			share.SharedAt = now
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO bill_shares (id, bill_id, contact_id, food_item, food_amount,
			 tax_share, service_charge_share, total_share, position, shared_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			share.ID, billID, share.ContactID, share.FoodItem, share.FoodAmount,
			share.TaxShare, share.ServiceChargeShare, share.TotalShare, i, share.SharedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListBillShares returns a bill's shares in the order they were assigned.
func (s *SQLiteStore) ListBillShares(ctx context.Context, billID string) ([]*models.BillShare, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bill_id, contact_id, food_item, food_amount, tax_share,
		 service_charge_share, total_share, shared_at
		 FROM bill_shares WHERE bill_id = ? ORDER BY position`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []*models.BillShare
	for rows.Next() {
		share := &models.BillShare{}
		if err := rows.Scan(&share.ID, &share.BillID, &share.ContactID, &share.FoodItem,
			&share.FoodAmount, &share.TaxShare, &share.ServiceChargeShare,
			&share.TotalShare, &share.SharedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}

// GetBillShare retrieves the share of one contact on one bill.
func (s *SQLiteStore) GetBillShare(ctx context.Context, billID, contactID string) (*models.BillShare, error) {
	share := &models.BillShare{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, bill_id, contact_id, food_item, food_amount, tax_share,
		 service_charge_share, total_share, shared_at
		 FROM bill_shares WHERE bill_id = ? AND contact_id = ?`,
		billID, contactID,
	).Scan(&share.ID, &share.BillID, &share.ContactID, &share.FoodItem,
		&share.FoodAmount, &share.TaxShare, &share.ServiceChargeShare,
		&share.TotalShare, &share.SharedAt)

	if err == sql.ErrNoRows {
		return nil, nil // No share for this contact
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}

	return share, nil
}
