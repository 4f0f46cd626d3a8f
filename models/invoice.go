package models

// ExtractionDocument is the raw response the OCR API returns for one submitted
// file: the recognised text plus the full decoded response body.
type ExtractionDocument struct {
	OCRText string
	Raw     map[string]any
}

// ExtractionResult is the structured record built from one invoice. It is an
// open field mapping rather than a fixed schema; downstream code only
// presence-checks the keys it needs.
type ExtractionResult map[string]any

// Field keys used by the parser and validator.
const (
	FieldDate          = "date"
	FieldInvoiceNumber = "invoice_number"
	FieldVendorName    = "vendor_name"
	FieldVendorAddress = "vendor_address"
	FieldBillToName    = "bill_to_name"
	FieldTotal         = "total"
	FieldLineItems     = "line_items"
)

// LineItem is one row of the invoice table. SKU and TaxRate are pointers so
// that absent values serialize as JSON null rather than zero.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Price       float64  `json:"price"`
	Total       float64  `json:"total"`
	SKU         *string  `json:"sku"`
	TaxRate     *float64 `json:"tax_rate"`
}
