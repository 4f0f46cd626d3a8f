package parser

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"invoicebatch/models"
)

func loadSample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/sample_invoice.txt")
	if err != nil {
		t.Fatalf("failed to read sample invoice: %v", err)
	}
	return string(data)
}

func TestValidateFormat(t *testing.T) {
	p := &Parser{}

	if err := p.ValidateFormat(loadSample(t)); err != nil {
		t.Errorf("ValidateFormat() rejected a valid invoice: %v", err)
	}

	// Lacks the address format, payment footer and table header fingerprints.
	invalid := `
	Invoice
	Some Other Vendor
	123 Main St

	Total: $500.00
	`
	err := p.ValidateFormat(invalid)
	if err == nil {
		t.Fatal("ValidateFormat() accepted a non-matching document")
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("ValidateFormat() error = %T, want *FormatError", err)
	}
}

func TestParse_FullExtraction(t *testing.T) {
	p := &Parser{}

	got, err := p.Parse(loadSample(t))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	want := models.ExtractionResult{
		models.FieldDate:          "2024-09-06",
		models.FieldInvoiceNumber: "0123456",
		models.FieldVendorName:    "Generic corp",
		models.FieldVendorAddress: "PO Box 000000. City, ST 12345-6789",
		models.FieldBillToName:    "Company, Inc.",
		models.FieldTotal:         15000000.0,
		models.FieldLineItems: []models.LineItem{
			{
				Description: "Transport | 71 Gbps Fiber (08/2025)",
				Quantity:    1000.0,
				Price:       500.0,
				Total:       5000000.0,
			},
			{
				Description: "Transport |  Fiber Pair (Intra-campus) | Pairs  (05/2025 | 10 Gbps Fiber to xxxxxxxx (04/2024)",
				Quantity:    1000.0,
				Price:       500.0,
				Total:       5000000.0,
			},
			{
				Description: "Installation of Cross Connect | 023 Gbps Fiber",
				Quantity:    1000.0,
				Price:       500.0,
				Total:       5000000.0,
			},
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestParse_RejectsUnknownFormat(t *testing.T) {
	p := &Parser{}

	_, err := p.Parse("Receipt\nCoffee 3.50\nThanks for your business")
	if err == nil {
		t.Fatal("Parse() accepted a document with no fingerprint")
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("Parse() error = %T, want *FormatError", err)
	}
}

func TestParse_MissingTotalLeavesKeyUnset(t *testing.T) {
	p := &Parser{}

	// Fingerprint present (table header) but the Total USD row never appears.
	text := "Description\tQuantity\tRate\tAmount\nTransport | Fiber\t1.00\t2.00\t2.00\n"
	got, err := p.Parse(text)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if _, ok := got[models.FieldTotal]; ok {
		t.Errorf("Parse() set %q without a Total USD row: %v", models.FieldTotal, got[models.FieldTotal])
	}
	items, ok := got[models.FieldLineItems].([]models.LineItem)
	if !ok || len(items) != 1 {
		t.Fatalf("Parse() line items = %#v, want one item", got[models.FieldLineItems])
	}
	if items[0].Description != "Transport | Fiber" {
		t.Errorf("line item description = %q", items[0].Description)
	}
}

func TestCapitalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Generic Corp", "Generic corp"},
		{"ACME LTD", "Acme ltd"},
		{"", ""},
	}
	for _, c := range cases {
		if got := capitalize(c.in); got != c.want {
			t.Errorf("capitalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
