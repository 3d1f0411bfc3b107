package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverma16/splitbill/internal/models"
	"github.com/mverma16/splitbill/internal/storage/sqlite"
)

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) ParseImage(ctx context.Context, path string) (string, error) {
	return f.text, f.err
}

func newBillService(t *testing.T, rec *fakeRecognizer) (*BillService, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	if rec == nil {
		rec = &fakeRecognizer{}
	}
	return NewBillService(store, rec), store
}

func seedUserAndContacts(t *testing.T, store *sqlite.SQLiteStore, names ...string) (string, []*models.Contact) {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: "owner", PasswordHash: "x"}
	require.NoError(t, store.CreateUser(ctx, user))

	contacts := make([]*models.Contact, len(names))
	for i, name := range names {
		c := &models.Contact{UserID: user.ID, Name: name, WhatsAppNumber: "+919800000000"}
		require.NoError(t, store.CreateContact(ctx, c))
		contacts[i] = c
	}
	return user.ID, contacts
}

func validInput() BillInput {
	return BillInput{
		RestaurantName: "The Curry House",
		VisitDate:      "2026-08-15",
		BaseAmount:     30.0,
		DiscountAmount: 2.0,
		ServiceCharge:  5.0,
		TaxAmount:      10.0,
	}
}

func TestCreateComputesTotal(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, _ := seedUserAndContacts(t, store)
	ctx := context.Background()

	in := validInput()
	in.TotalAmount = 999.0 // ignored on the manual path

	bill, err := svc.Create(ctx, userID, in)
	require.NoError(t, err)

	// total = 30 - 2 + 5 + 10
	assert.Equal(t, 43.0, bill.TotalAmount)
	assert.NotEmpty(t, bill.ID)
}

func TestCreateValidation(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, _ := seedUserAndContacts(t, store)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*BillInput)
	}{
		{"blank restaurant", func(in *BillInput) { in.RestaurantName = "  " }},
		{"bad date", func(in *BillInput) { in.VisitDate = "15/08/2026" }},
		{"zero base", func(in *BillInput) { in.BaseAmount = 0 }},
		{"negative discount", func(in *BillInput) { in.DiscountAmount = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(ctx, userID, in)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateFromExtracted(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, _ := seedUserAndContacts(t, store)
	ctx := context.Background()

	t.Run("positive reviewed total is kept", func(t *testing.T) {
		in := validInput()
		in.TotalAmount = 44.5 // reviewer corrected it
		bill, err := svc.CreateFromExtracted(ctx, userID, in)
		require.NoError(t, err)
		assert.Equal(t, 44.5, bill.TotalAmount)
	})

	t.Run("non-positive total recomputed", func(t *testing.T) {
		in := validInput()
		in.TotalAmount = 0
		bill, err := svc.CreateFromExtracted(ctx, userID, in)
		require.NoError(t, err)
		assert.Equal(t, 43.0, bill.TotalAmount)
	})
}

func TestSplit(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, contacts := seedUserAndContacts(t, store, "Asha", "Ravi")
	ctx := context.Background()

	bill, err := svc.Create(ctx, userID, BillInput{
		RestaurantName: "The Curry House",
		VisitDate:      "2026-08-15",
		BaseAmount:     30.0,
		ServiceCharge:  5.0,
		TaxAmount:      10.0,
	})
	require.NoError(t, err)

	assignments := []models.ShareAssignment{
		{ContactID: contacts[0].ID, FoodItem: "Pizza", FoodAmount: 20.0},
		{ContactID: contacts[1].ID, FoodItem: "Salad", FoodAmount: 10.0},
	}

	details, err := svc.Split(ctx, userID, bill.ID, assignments)
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, "Asha", details[0].ContactName)
	assert.InDelta(t, 27.5, details[0].TotalShare, 0.01)
	assert.Equal(t, "Ravi", details[1].ContactName)
	assert.InDelta(t, 17.5, details[1].TotalShare, 0.01)

	// Shares are persisted and re-readable.
	_, persisted, err := svc.ShareDetails(ctx, userID, bill.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, details, persisted)
}

func TestSplitUnknownContactFailsClosed(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, contacts := seedUserAndContacts(t, store, "Asha")
	ctx := context.Background()

	bill, err := svc.Create(ctx, userID, validInput())
	require.NoError(t, err)

	assignments := []models.ShareAssignment{
		{ContactID: contacts[0].ID, FoodItem: "Pizza", FoodAmount: 20.0},
		{ContactID: "ghost", FoodItem: "Salad", FoodAmount: 10.0},
	}

	_, err = svc.Split(ctx, userID, bill.ID, assignments)
	assert.True(t, IsValidation(err))
	assert.ErrorContains(t, err, "ghost")

	// Nothing was persisted for the rejected batch.
	_, persisted, err := svc.ShareDetails(ctx, userID, bill.ID)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestSplitEmptyAssignments(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, _ := seedUserAndContacts(t, store)
	ctx := context.Background()

	bill, err := svc.Create(ctx, userID, validInput())
	require.NoError(t, err)

	details, err := svc.Split(ctx, userID, bill.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestSplitBillNotFound(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, _ := seedUserAndContacts(t, store)

	_, err := svc.Split(context.Background(), userID, "missing", nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProcessReceipt(t *testing.T) {
	t.Run("extracts amounts from recognized text", func(t *testing.T) {
		svc, _ := newBillService(t, &fakeRecognizer{text: "Subtotal: 45.00 Tax: 3.60 Total: 48.60"})

		text, amounts, err := svc.ProcessReceipt(context.Background(), "receipt.jpg")
		require.NoError(t, err)
		assert.NotEmpty(t, text)
		assert.Equal(t, 45.00, amounts.Subtotal)
		assert.Equal(t, 48.60, amounts.Total)
	})

	t.Run("near-empty text is a hard failure", func(t *testing.T) {
		svc, _ := newBillService(t, &fakeRecognizer{text: "a b\n"})

		_, _, err := svc.ProcessReceipt(context.Background(), "receipt.jpg")
		assert.True(t, IsValidation(err))
	})

	t.Run("recognizer errors propagate", func(t *testing.T) {
		svc, _ := newBillService(t, &fakeRecognizer{err: errors.New("service unavailable")})

		_, _, err := svc.ProcessReceipt(context.Background(), "receipt.jpg")
		assert.ErrorContains(t, err, "text recognition failed")
	})
}

func TestIndividualShare(t *testing.T) {
	svc, store := newBillService(t, nil)
	userID, contacts := seedUserAndContacts(t, store, "Asha")
	ctx := context.Background()

	bill, err := svc.Create(ctx, userID, validInput())
	require.NoError(t, err)

	_, err = svc.Split(ctx, userID, bill.ID, []models.ShareAssignment{
		{ContactID: contacts[0].ID, FoodItem: "Pizza", FoodAmount: 20.0},
	})
	require.NoError(t, err)

	gotBill, gotContact, gotShare, err := svc.IndividualShare(ctx, userID, bill.ID, contacts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, gotBill.ID)
	assert.Equal(t, "Asha", gotContact.Name)
	assert.InDelta(t, 20.0+10.0+5.0, gotShare.TotalShare, 0.01)

	_, _, _, err = svc.IndividualShare(ctx, userID, bill.ID, "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
}
