package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mverma16/splitbill/internal/models"
	"github.com/mverma16/splitbill/internal/storage"
)

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, user_id, restaurant_name, visit_date, base_amount,
		 discount_amount, service_charge, tax_amount, total_amount, bill_image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.UserID, bill.RestaurantName, bill.VisitDate, bill.BaseAmount,
		bill.DiscountAmount, bill.ServiceCharge, bill.TaxAmount, bill.TotalAmount,
		nullable(bill.BillImage), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	return nil
}

// GetBill retrieves one of the user's bills.
func (s *SQLiteStore) GetBill(ctx context.Context, userID, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var image sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, restaurant_name, visit_date, base_amount, discount_amount,
		 service_charge, tax_amount, total_amount, bill_image, created_at
		 FROM bills WHERE id = ? AND user_id = ?`,
		billID, userID,
	).Scan(&bill.ID, &bill.UserID, &bill.RestaurantName, &bill.VisitDate, &bill.BaseAmount,
		&bill.DiscountAmount, &bill.ServiceCharge, &bill.TaxAmount, &bill.TotalAmount,
		&image, &bill.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Bill not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if image.Valid {
		bill.BillImage = image.String
	}
	return bill, nil
}

// ListBills returns the user's bills, most recent visit first.
func (s *SQLiteStore) ListBills(ctx context.Context, userID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, restaurant_name, visit_date, base_amount, discount_amount,
		 service_charge, tax_amount, total_amount, bill_image, created_at
		 FROM bills WHERE user_id = ? ORDER BY visit_date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var image sql.NullString
		if err := rows.Scan(&bill.ID, &bill.UserID, &bill.RestaurantName, &bill.VisitDate,
			&bill.BaseAmount, &bill.DiscountAmount, &bill.ServiceCharge, &bill.TaxAmount,
			&bill.TotalAmount, &image, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if image.Valid {
			bill.BillImage = image.String
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// DeleteBill removes a bill; its shares cascade away.
func (s *SQLiteStore) DeleteBill(ctx context.Context, userID, billID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM bills WHERE id = ? AND user_id = ?",
		billID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bill not found: %s", billID)
	}

	return nil
}

// GetSpendingStats aggregates the user's contact count, bill count and total
// spending for the dashboard.
func (s *SQLiteStore) GetSpendingStats(ctx context.Context, userID string) (*storage.SpendingStats, error) {
	stats := &storage.SpendingStats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM contacts WHERE user_id = ?),
		   (SELECT COUNT(*) FROM bills WHERE user_id = ?),
		   (SELECT COALESCE(SUM(total_amount), 0) FROM bills WHERE user_id = ?)`,
		userID, userID, userID,
	).Scan(&stats.ContactCount, &stats.BillCount, &stats.TotalSpending)
	if err != nil {
		return nil, fmt.Errorf("failed to get spending stats: %w", err)
	}

	return stats, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
