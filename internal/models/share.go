package models

// ShareAssignment is one line of a split request: a contact, what they ate,
// and how much of the food total is theirs. FoodAmount must be positive;
// callers validate before the split is calculated.
type ShareAssignment struct {
	ContactID  string
	FoodItem   string
	FoodAmount float64
}

// BillShare is one contact's prorated portion of a bill. Shares are created
// in a batch when a bill is split and are deleted with their parent bill or
// contact.
type BillShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// BillID references the parent bill.
	BillID string

	// ContactID references the contact who owes this share.
	ContactID string

	// FoodItem describes what the contact ordered.
	FoodItem string

	// FoodAmount is the contact's own food cost.
	FoodAmount float64

	// TaxShare is the contact's even share of the bill's tax.
	TaxShare float64

	// ServiceChargeShare is the contact's even share of the service charge.
	ServiceChargeShare float64

	// TotalShare = FoodAmount + TaxShare + ServiceChargeShare.
	TotalShare float64

	// SharedAt is the Unix timestamp when the split was recorded.
	SharedAt int64
}
