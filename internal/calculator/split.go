// Package calculator prorates a bill's shared costs across participants.
package calculator

import (
	"fmt"

	"github.com/mverma16/splitbill/internal/models"
)

// Split divides a bill among the given assignments. Tax and service charge
// are split evenly across participants regardless of each participant's food
// amount; weighting by consumption is deliberately out of scope. Each share's
// total is food_amount + tax_per_person + service_per_person.
//
// Output order matches assignment input order. No rounding is applied here;
// currency rounding is a presentation concern.
//
// An empty assignment list yields an empty result, not an error: with no
// participants there is nothing to prorate.
func Split(bill *models.Bill, assignments []models.ShareAssignment) []models.BillShare {
	if len(assignments) == 0 {
		return nil
	}

	n := float64(len(assignments))
	taxPerPerson := bill.TaxAmount / n
	servicePerPerson := bill.ServiceCharge / n

	shares := make([]models.BillShare, len(assignments))
	for i, a := range assignments {
		shares[i] = models.BillShare{
			BillID:             bill.ID,
			ContactID:          a.ContactID,
			FoodItem:           a.FoodItem,
			FoodAmount:         a.FoodAmount,
			TaxShare:           taxPerPerson,
			ServiceChargeShare: servicePerPerson,
			TotalShare:         a.FoodAmount + taxPerPerson + servicePerPerson,
		}
	}
	return shares
}

// ValidateAssignments rejects malformed split input before it reaches Split.
// Every assignment needs a contact and a positive food amount.
func ValidateAssignments(assignments []models.ShareAssignment) error {
	for i, a := range assignments {
		if a.ContactID == "" {
			return fmt.Errorf("assignment %d: contact is required", i+1)
		}
		if a.FoodAmount <= 0 {
			return fmt.Errorf("assignment %d: food amount must be greater than 0", i+1)
		}
	}
	return nil
}
