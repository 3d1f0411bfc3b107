package models

// Default values applied when a contact is created without them.
const (
	DefaultCountryCode = "+91"
	DefaultAvatar      = "avatar1.png"
)

// Contact is a user's saved payee. Bills are split among contacts, and each
// contact's share can be delivered to their WhatsApp number.
type Contact struct {
	// ID is the unique identifier for the contact (UUID format).
	ID string

	// UserID is the owning user. Contacts are never shared between accounts.
	UserID string

	// Name is the contact's display name.
	Name string

	// CountryCode is the dialing prefix for the WhatsApp number, e.g. "+91".
	CountryCode string

	// WhatsAppNumber is the delivery address for share messages.
	WhatsAppNumber string

	// Avatar is the filename of the contact's avatar image.
	Avatar string

	// CreatedAt is the Unix timestamp when the contact was saved.
	CreatedAt int64
}
