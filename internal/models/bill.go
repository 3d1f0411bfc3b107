package models

// Bill represents one restaurant visit's total spend, owned by a single user.
//
// The amounts satisfy the creation invariant:
//
//	TotalAmount = BaseAmount - DiscountAmount + ServiceCharge + TaxAmount
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// UserID is the owning user.
	UserID string

	// RestaurantName is where the bill was incurred.
	RestaurantName string

	// VisitDate is the date of the visit in "2006-01-02" form.
	VisitDate string

	// BaseAmount is the food subtotal before discounts, charges and tax.
	BaseAmount float64

	// DiscountAmount reduces the base amount.
	DiscountAmount float64

	// ServiceCharge is the venue's service charge or tip.
	ServiceCharge float64

	// TaxAmount is the total tax on the bill.
	TaxAmount float64

	// TotalAmount is the final amount paid.
	TotalAmount float64

	// BillImage is the stored filename of the uploaded receipt photo,
	// empty for manually entered bills.
	BillImage string

	// CreatedAt is the Unix timestamp when the bill was recorded.
	CreatedAt int64
}

// ComputeTotal derives the bill total from its component amounts.
func ComputeTotal(base, discount, service, tax float64) float64 {
	return base - discount + service + tax
}
