// Package validator rejects extraction records that are missing required
// fields before anything is written to disk.
package validator

import (
	"invoicebatch/models"
)

// Outcome classifies one extraction record. Reason is set only when the
// record is invalid and names the first missing field.
type Outcome struct {
	Valid  bool
	Reason string
}

// requiredField pairs a record key with the human label used in reasons.
type requiredField struct {
	Key   string
	Label string
}

// requiredFields are checked in this exact order. The first missing one names
// the failure reason, so the order is part of the package's contract and is
// relied on by callers and tests.
var requiredFields = []requiredField{
	{Key: models.FieldVendorName, Label: "vendor name"},
	{Key: models.FieldTotal, Label: "total amount"},
	{Key: models.FieldLineItems, Label: "line items"},
}

// Validate presence-checks the required fields. No semantic validation is
// done: a total that does not equal the sum of the line items still passes.
func Validate(result models.ExtractionResult) Outcome {
	for _, rf := range requiredFields {
		if !present(result, rf.Key) {
			return Outcome{Valid: false, Reason: rf.Label}
		}
	}
	return Outcome{Valid: true}
}

// present reports whether the key holds a usable value: non-nil, and for
// strings and lists, non-empty.
func present(result models.ExtractionResult, key string) bool {
	v, ok := result[key]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	case []models.LineItem:
		return len(val) > 0
	case []any:
		return len(val) > 0
	default:
		return true
	}
}
