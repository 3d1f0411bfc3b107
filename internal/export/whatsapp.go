package export

import (
	"fmt"
	"strings"

	"github.com/mverma16/splitbill/internal/models"
)

// GroupMessage renders the all-shares summary sent to the group chat.
func GroupMessage(bill *models.Bill, details []ShareDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽️ *Bill Sharing - %s*\n", bill.RestaurantName)
	fmt.Fprintf(&sb, "Date: %s\n", bill.VisitDate)
	fmt.Fprintf(&sb, "Total Amount: %s\n\n", money(bill.TotalAmount))
	sb.WriteString("*Individual Shares:*\n")
	for _, d := range details {
		fmt.Fprintf(&sb, "👤 %s:\n", d.ContactName)
		fmt.Fprintf(&sb, "   Food: %s (%s)\n", money(d.FoodAmount), d.FoodItem)
		fmt.Fprintf(&sb, "   Tax: %s\n", money(d.TaxShare))
		fmt.Fprintf(&sb, "   Service: %s\n", money(d.ServiceChargeShare))
		fmt.Fprintf(&sb, "   *Total: %s*\n\n", money(d.TotalShare))
	}
	sb.WriteString("Please transfer your share. Thank you! 🙏")
	return sb.String()
}

// IndividualMessage renders the per-contact message for one share.
func IndividualMessage(bill *models.Bill, contact *models.Contact, share *models.BillShare) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s! 👋\n\n", contact.Name)
	fmt.Fprintf(&sb, "Here's your share for %s:\n", bill.RestaurantName)
	fmt.Fprintf(&sb, "🍽️ Food: %s (%s)\n", money(share.FoodAmount), share.FoodItem)
	fmt.Fprintf(&sb, "📊 Tax: %s\n", money(share.TaxShare))
	fmt.Fprintf(&sb, "🔔 Service: %s\n", money(share.ServiceChargeShare))
	fmt.Fprintf(&sb, "💰 *Total Amount: %s*\n\n", money(share.TotalShare))
	sb.WriteString("Please transfer this amount. Thank you! 😊")
	return sb.String()
}

// waEscaper covers the two characters the messages actually contain that
// wa.me links cannot carry verbatim.
var waEscaper = strings.NewReplacer(" ", "%20", "\n", "%0A")

// WhatsAppLink builds the wa.me deep link that opens a chat with the number
// and the message pre-filled.
func WhatsAppLink(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, waEscaper.Replace(message))
}
