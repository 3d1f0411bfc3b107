package models

// ExtractedAmounts is the extractor's best-guess breakdown of recognized
// receipt text. Fields the extractor could not resolve are zero; a human
// reviews and corrects the record before it becomes a Bill.
type ExtractedAmounts struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	Discount      float64 `json:"discount"`
	ServiceCharge float64 `json:"service_charge"`
}

// Empty reports whether nothing usable was detected. The upload flow uses
// this to prompt the user for manual entry.
func (a ExtractedAmounts) Empty() bool {
	return a.Total == 0 && a.Subtotal == 0
}
