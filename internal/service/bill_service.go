package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mverma16/splitbill/internal/calculator"
	"github.com/mverma16/splitbill/internal/export"
	"github.com/mverma16/splitbill/internal/extractor"
	"github.com/mverma16/splitbill/internal/metrics"
	"github.com/mverma16/splitbill/internal/models"
	"github.com/mverma16/splitbill/internal/ocr"
	"github.com/mverma16/splitbill/internal/storage"
)

const visitDateFormat = "2006-01-02"

// TextRecognizer is the OCR collaborator: it accepts an image path and
// returns recognized text.
type TextRecognizer interface {
	ParseImage(ctx context.Context, path string) (string, error)
}

// BillService manages bills, receipt extraction and splitting.
type BillService struct {
	store      storage.Store
	recognizer TextRecognizer
}

// NewBillService creates a new BillService.
func NewBillService(store storage.Store, recognizer TextRecognizer) *BillService {
	return &BillService{store: store, recognizer: recognizer}
}

// BillInput carries the user-entered fields of a new bill.
type BillInput struct {
	RestaurantName string
	VisitDate      string
	BaseAmount     float64
	DiscountAmount float64
	ServiceCharge  float64
	TaxAmount      float64
	// TotalAmount is only honored on the OCR-assisted path; when it is
	// zero or negative the total is recomputed from the components.
	TotalAmount float64
	BillImage   string
}

func (in *BillInput) validate() error {
	if strings.TrimSpace(in.RestaurantName) == "" {
		return validationf("restaurant name is required")
	}
	if _, err := time.Parse(visitDateFormat, in.VisitDate); err != nil {
		return validationf("visit date must be in YYYY-MM-DD form")
	}
	if in.BaseAmount <= 0 {
		return validationf("base amount must be greater than 0")
	}
	if in.DiscountAmount < 0 || in.ServiceCharge < 0 || in.TaxAmount < 0 {
		return validationf("amounts cannot be negative")
	}
	return nil
}

// Create records a manually entered bill. The total is always derived from
// the components: total = base - discount + service + tax.
func (s *BillService) Create(ctx context.Context, userID string, in BillInput) (*models.Bill, error) {
	in.TotalAmount = 0
	return s.create(ctx, userID, in)
}

// CreateFromExtracted records a bill whose amounts came from receipt
// extraction and were reviewed by the user. A submitted positive total is
// kept as-is (the reviewer may have corrected it); otherwise it is
// recomputed from the components.
func (s *BillService) CreateFromExtracted(ctx context.Context, userID string, in BillInput) (*models.Bill, error) {
	return s.create(ctx, userID, in)
}

func (s *BillService) create(ctx context.Context, userID string, in BillInput) (*models.Bill, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	total := in.TotalAmount
	if total <= 0 {
		total = models.ComputeTotal(in.BaseAmount, in.DiscountAmount, in.ServiceCharge, in.TaxAmount)
	}
	if total <= 0 {
		return nil, validationf("total amount must be greater than 0")
	}

	bill := &models.Bill{
		UserID:         userID,
		RestaurantName: strings.TrimSpace(in.RestaurantName),
		VisitDate:      in.VisitDate,
		BaseAmount:     in.BaseAmount,
		DiscountAmount: in.DiscountAmount,
		ServiceCharge:  in.ServiceCharge,
		TaxAmount:      in.TaxAmount,
		TotalAmount:    total,
		BillImage:      in.BillImage,
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	slog.Info("Bill created", "user_id", userID, "bill_id", bill.ID, "total", bill.TotalAmount)
	return bill, nil
}

// Get retrieves one of the user's bills.
func (s *BillService) Get(ctx context.Context, userID, billID string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up bill: %w", err)
	}
	if bill == nil {
		return nil, fmt.Errorf("bill %s: %w", billID, ErrNotFound)
	}
	return bill, nil
}

// List returns the user's bills, most recent visit first.
func (s *BillService) List(ctx context.Context, userID string) ([]*models.Bill, error) {
	return s.store.ListBills(ctx, userID)
}

// Delete removes a bill and its shares.
func (s *BillService) Delete(ctx context.Context, userID, billID string) error {
	if _, err := s.Get(ctx, userID, billID); err != nil {
		return err
	}
	if err := s.store.DeleteBill(ctx, userID, billID); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	slog.Info("Bill deleted", "user_id", userID, "bill_id", billID)
	return nil
}

// DashboardStats aggregates the user's totals for the dashboard view.
func (s *BillService) DashboardStats(ctx context.Context, userID string) (*storage.SpendingStats, []*models.Bill, error) {
	stats, err := s.store.GetSpendingStats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stats: %w", err)
	}
	bills, err := s.store.ListBills(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load recent bills: %w", err)
	}
	if len(bills) > 5 {
		bills = bills[:5]
	}
	return stats, bills, nil
}

// ProcessReceipt runs OCR on the uploaded image and extracts a best-guess
// amount breakdown for the user to review. Unreadable images are a hard
// failure; an image that reads but yields no amounts is not, the user is
// just asked to fill the numbers in manually.
func (s *BillService) ProcessReceipt(ctx context.Context, imagePath string) (string, models.ExtractedAmounts, error) {
	text, err := s.recognizer.ParseImage(ctx, imagePath)
	if err != nil {
		return "", models.ExtractedAmounts{}, fmt.Errorf("%w: %v", ErrRecognition, err)
	}
	if !ocr.HasUsableText(text) {
		return "", models.ExtractedAmounts{}, validationf("very little text recognized; try a clearer image or enter amounts manually")
	}

	amounts := extractor.Extract(text)
	metrics.ObserveExtraction(map[string]float64{
		"subtotal":       amounts.Subtotal,
		"tax":            amounts.Tax,
		"total":          amounts.Total,
		"discount":       amounts.Discount,
		"service_charge": amounts.ServiceCharge,
	})

	slog.Info("Receipt processed",
		"image", imagePath,
		"subtotal", amounts.Subtotal,
		"total", amounts.Total,
		"empty", amounts.Empty(),
	)
	return text, amounts, nil
}

// Split prorates the bill across the assignments and persists the resulting
// shares atomically. The whole batch is rejected if any assignment references
// a contact that does not exist for this user; skipping entries silently
// would change the proration divisor behind the caller's back.
func (s *BillService) Split(ctx context.Context, userID, billID string, assignments []models.ShareAssignment) ([]export.ShareDetail, error) {
	bill, err := s.Get(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if err := calculator.ValidateAssignments(assignments); err != nil {
		return nil, validationf("%s", err.Error())
	}

	contacts := make(map[string]*models.Contact, len(assignments))
	for _, a := range assignments {
		if _, seen := contacts[a.ContactID]; seen {
			continue
		}
		contact, err := s.store.GetContact(ctx, userID, a.ContactID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up contact: %w", err)
		}
		if contact == nil {
			return nil, validationf("contact %s does not exist", a.ContactID)
		}
		contacts[a.ContactID] = contact
	}

	shares := calculator.Split(bill, assignments)
	if err := s.store.ReplaceBillShares(ctx, billID, shares); err != nil {
		return nil, fmt.Errorf("failed to save shares: %w", err)
	}
	metrics.SplitsTotal.Inc()

	details := make([]export.ShareDetail, len(shares))
	for i, share := range shares {
		contact := contacts[share.ContactID]
		details[i] = export.ShareDetail{
			ContactName:        contact.Name,
			WhatsAppNumber:     contact.WhatsAppNumber,
			FoodItem:           share.FoodItem,
			FoodAmount:         share.FoodAmount,
			TaxShare:           share.TaxShare,
			ServiceChargeShare: share.ServiceChargeShare,
			TotalShare:         share.TotalShare,
		}
	}

	slog.Info("Bill split", "user_id", userID, "bill_id", billID, "shares", len(shares))
	return details, nil
}

// ShareDetails loads a bill's persisted shares joined with their contacts,
// in assignment order.
func (s *BillService) ShareDetails(ctx context.Context, userID, billID string) (*models.Bill, []export.ShareDetail, error) {
	bill, err := s.Get(ctx, userID, billID)
	if err != nil {
		return nil, nil, err
	}

	shares, err := s.store.ListBillShares(ctx, billID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load shares: %w", err)
	}

	details := make([]export.ShareDetail, 0, len(shares))
	for _, share := range shares {
		contact, err := s.store.GetContact(ctx, userID, share.ContactID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up contact: %w", err)
		}
		if contact == nil {
			// Contact deleted since the split; its share cascades
			// away, but guard against a race.
			continue
		}
		details = append(details, export.ShareDetail{
			ContactName:        contact.Name,
			WhatsAppNumber:     contact.WhatsAppNumber,
			FoodItem:           share.FoodItem,
			FoodAmount:         share.FoodAmount,
			TaxShare:           share.TaxShare,
			ServiceChargeShare: share.ServiceChargeShare,
			TotalShare:         share.TotalShare,
		})
	}
	return bill, details, nil
}

// IndividualShare loads one contact's share of a bill for the per-person
// message.
func (s *BillService) IndividualShare(ctx context.Context, userID, billID, contactID string) (*models.Bill, *models.Contact, *models.BillShare, error) {
	bill, err := s.Get(ctx, userID, billID)
	if err != nil {
		return nil, nil, nil, err
	}
	contact, err := s.store.GetContact(ctx, userID, contactID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to look up contact: %w", err)
	}
	if contact == nil {
		return nil, nil, nil, fmt.Errorf("contact %s: %w", contactID, ErrNotFound)
	}
	share, err := s.store.GetBillShare(ctx, billID, contactID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load share: %w", err)
	}
	if share == nil {
		return nil, nil, nil, fmt.Errorf("share for contact %s: %w", contactID, ErrNotFound)
	}
	return bill, contact, share, nil
}
