// Package export renders bill splits as shareable artifacts: a CSV report
// and WhatsApp message text. Rendering is pure formatting; all monetary
// values are rounded to two decimals with a currency prefix here and nowhere
// else.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mverma16/splitbill/internal/models"
)

// ShareDetail is one share joined with its contact, the unit of rendering
// for both CSV rows and message lines.
type ShareDetail struct {
	ContactName        string
	WhatsAppNumber     string
	FoodItem           string
	FoodAmount         float64
	TaxShare           float64
	ServiceChargeShare float64
	TotalShare         float64
}

const dateFormat = "2006-01-02"

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// WriteCSV writes the bill-sharing report: a header block describing the
// bill, one row per share, and a totals row summing the monetary columns.
func WriteCSV(w io.Writer, bill *models.Bill, details []ShareDetail, generatedAt time.Time) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := [][]string{
		{"Bill Sharing Details"},
		{},
		{"Restaurant:", bill.RestaurantName},
		{"Visit Date:", bill.VisitDate},
		{"Base Amount:", money(bill.BaseAmount)},
		{"Discount Amount:", money(bill.DiscountAmount)},
		{"Service Charge:", money(bill.ServiceCharge)},
		{"Tax Amount:", money(bill.TaxAmount)},
		{"Total Amount:", money(bill.TotalAmount)},
		{"Generated On:", generatedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Contact Name", "WhatsApp Number", "Food Item", "Food Amount", "Tax Share", "Service Charge Share", "Total Share"},
	}
	for _, row := range header {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	var totalFood, totalTax, totalService, totalShare float64
	for _, d := range details {
		row := []string{
			d.ContactName,
			d.WhatsAppNumber,
			d.FoodItem,
			money(d.FoodAmount),
			money(d.TaxShare),
			money(d.ServiceChargeShare),
			money(d.TotalShare),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing share row: %w", err)
		}
		totalFood += d.FoodAmount
		totalTax += d.TaxShare
		totalService += d.ServiceChargeShare
		totalShare += d.TotalShare
	}

	if err := cw.Write(nil); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	totals := []string{"TOTAL", "", "", money(totalFood), money(totalTax), money(totalService), money(totalShare)}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing totals row: %w", err)
	}
	return cw.Error()
}

// CSV renders the report to a string.
func CSV(bill *models.Bill, details []ShareDetail, generatedAt time.Time) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, bill, details, generatedAt); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Filename builds the suggested download name for a bill's CSV export.
func Filename(bill *models.Bill, generatedAt time.Time) string {
	return fmt.Sprintf("bill_share_%s_%s.csv", bill.ID, generatedAt.Format("20060102_150405"))
}
