// Package models defines the core domain records for splitbill.
//
// # Models
//
//   - User: a registered account that owns contacts and bills
//   - Contact: a saved payee with a WhatsApp number for message delivery
//   - Bill: one restaurant visit's spend record
//   - BillShare: one contact's prorated portion of a bill
//   - ShareAssignment: the input to a split (contact, food item, amount)
//   - ExtractedAmounts: the extractor's best-guess breakdown of receipt text
//
// # Design Principles
//
// 1. Records reference each other by ID strings, never pointers, to avoid
// circular references.
// 2. Ownership is explicit: every Contact and Bill carries its owner's UserID,
// and all reads are scoped by it.
// 3. Monetary values are float64 throughout; currency rounding happens only at
// the presentation layer (CSV, messages).
package models
