// Package extractor turns raw recognized receipt text into a structured
// amount breakdown. Receipts are noisy, free-form inputs, so extraction is a
// deterministic rule cascade: ordered label patterns per field, a numeric
// fallback for the total, and a reconciliation pass that back-fills the
// subtotal when the numbers disagree.
//
// Known weakness: reconciliation only ever corrects the subtotal. When the
// extracted tax or total is the wrong field, the drift is accepted silently
// because there is no way to tell which field is at fault.
package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mverma16/splitbill/internal/models"
)

const (
	// Plausible currency range for the total fallback. Values outside it
	// are assumed to be item counts, phone digits or OCR garbage.
	minPlausibleAmount = 1.0
	maxPlausibleAmount = 10000.0

	// Maximum disagreement between the extracted total and the total
	// recomputed from components before reconciliation kicks in.
	reconcileTolerance = 1.0
)

type field int

const (
	fieldSubtotal field = iota
	fieldTax
	fieldTotal
	fieldDiscount
	fieldServiceCharge
	numFields
)

// patternTable maps each field to its label patterns, tried in order. The
// first pattern with any match wins the field; within that pattern the last
// match in the text wins, because receipts restate the running total near the
// bottom. Both orderings encode tuning against real receipts. Do not reorder.
var patternTable = [numFields][]*regexp.Regexp{
	fieldSubtotal: compileAll(
		`sub\s?total\s*[:\$]?\s*(\d+\.?\d*)`,
		`base\s*amount\s*[:\$]?\s*(\d+\.?\d*)`,
		`food\s*total\s*[:\$]?\s*(\d+\.?\d*)`,
		`amount\s*before\s*tax\s*[:\$]?\s*(\d+\.?\d*)`,
	),
	fieldTax: compileAll(
		`tax\s*[:\$]?\s*(\d+\.?\d*)`,
		`gst\s*[:\$]?\s*(\d+\.?\d*)`,
		`vat\s*[:\$]?\s*(\d+\.?\d*)`,
		`sales\s*tax\s*[:\$]?\s*(\d+\.?\d*)`,
		`tax\s*amount\s*[:\$]?\s*(\d+\.?\d*)`,
	),
	fieldTotal: compileAll(
		`total\s*[:\$]?\s*(\d+\.?\d*)`,
		`grand\s*total\s*[:\$]?\s*(\d+\.?\d*)`,
		`amount\s*due\s*[:\$]?\s*(\d+\.?\d*)`,
		`amount\s*to\s*pay\s*[:\$]?\s*(\d+\.?\d*)`,
		`final\s*amount\s*[:\$]?\s*(\d+\.?\d*)`,
		`payable\s*amount\s*[:\$]?\s*(\d+\.?\d*)`,
	),
	fieldDiscount: compileAll(
		`discount\s*[:\$]?\s*(\d+\.?\d*)`,
		`off\s*[:\$]?\s*(\d+\.?\d*)`,
		`deduction\s*[:\$]?\s*(\d+\.?\d*)`,
		`coupon\s*[:\$]?\s*(\d+\.?\d*)`,
	),
	fieldServiceCharge: compileAll(
		`service\s*charge\s*[:\$]?\s*(\d+\.?\d*)`,
		`service\s*[:\$]?\s*(\d+\.?\d*)`,
		`tip\s*[:\$]?\s*(\d+\.?\d*)`,
		`gratuity\s*[:\$]?\s*(\d+\.?\d*)`,
	),
}

var (
	noiseRe  = regexp.MustCompile(`[^\w\s.$:]`)
	spacesRe = regexp.MustCompile(`\s+`)
	numberRe = regexp.MustCompile(`\$?\s*(\d+\.?\d*)`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// Normalize lowercases the text, strips everything except alphanumerics,
// whitespace, '.', '$' and ':', and collapses whitespace runs to single
// spaces. This defends against stray symbols and line-break artifacts in
// recognized text.
func Normalize(rawText string) string {
	text := strings.ToLower(rawText)
	text = noiseRe.ReplaceAllString(text, " ")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Extract produces a best-guess breakdown of the recognized text. It never
// fails: fields with no usable match stay zero, and the caller surfaces an
// empty result to the human reviewer instead of blocking bill creation.
func Extract(rawText string) models.ExtractedAmounts {
	text := Normalize(rawText)

	var vals [numFields]float64
	var matched [numFields]bool

	for f := field(0); f < numFields; f++ {
		for _, re := range patternTable[f] {
			ms := re.FindAllStringSubmatch(text, -1)
			if len(ms) == 0 {
				continue
			}
			v, err := strconv.ParseFloat(ms[len(ms)-1][1], 64)
			if err != nil {
				continue
			}
			vals[f] = v
			matched[f] = true
			break
		}
	}

	// No labeled total: take the largest standalone number in the
	// plausible currency range. Totals are typically the largest
	// line-item on a bill.
	if vals[fieldTotal] == 0 {
		vals[fieldTotal] = largestPlausible(text)
	}

	// No subtotal but a known total: back-compute it. Negative results
	// mean the other fields are unreliable, so leave zero.
	if vals[fieldSubtotal] == 0 && vals[fieldTotal] > 0 {
		if s := backComputeSubtotal(vals); s > 0 {
			vals[fieldSubtotal] = s
		}
	}

	// Reconciliation: only trust the back-computed subtotal when it was
	// never pattern-matched directly. A directly matched subtotal that
	// disagrees with the total is left alone.
	if vals[fieldTotal] > 0 {
		candidate := vals[fieldSubtotal] - vals[fieldDiscount] + vals[fieldServiceCharge] + vals[fieldTax]
		if math.Abs(candidate-vals[fieldTotal]) > reconcileTolerance && !matched[fieldSubtotal] {
			if s := backComputeSubtotal(vals); s > 0 {
				vals[fieldSubtotal] = s
			}
		}
	}

	return models.ExtractedAmounts{
		Subtotal:      vals[fieldSubtotal],
		Tax:           vals[fieldTax],
		Total:         vals[fieldTotal],
		Discount:      vals[fieldDiscount],
		ServiceCharge: vals[fieldServiceCharge],
	}
}

func backComputeSubtotal(vals [numFields]float64) float64 {
	return vals[fieldTotal] - vals[fieldTax] - vals[fieldServiceCharge] + vals[fieldDiscount]
}

func largestPlausible(text string) float64 {
	var max float64
	for _, m := range numberRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v >= minPlausibleAmount && v <= maxPlausibleAmount && v > max {
			max = v
		}
	}
	return max
}
