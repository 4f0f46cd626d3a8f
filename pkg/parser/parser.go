// Package parser turns raw invoice OCR text into a structured record.
//
// The expected layout is a tab-delimited invoice: a header row with issue
// date, due date and invoice number, a vendor block, a "bill to" block, and a
// line-item table terminated by a "Total USD" row. Documents from other
// vendors are rejected up front by a fingerprint check rather than producing
// garbage records.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"invoicebatch/models"
)

// FormatError reports that a document does not look like the expected invoice
// layout. The batch loop treats it as a skip, not a crash.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("document does not match invoice format: %s", e.Reason)
}

// fingerprints: at least one of these must appear in the text before any
// extraction is attempted. They pin down the address format, the payment
// instruction footer and the line-item table header.
var fingerprints = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[\w\s]+\s+[\w\s]+,\s*[A-Z]{2}\s*\d{5}-\d{4}`),
	regexp.MustCompile(`(?i)Please make payments to:\s*[\w\s]+,\s*Ltd\.`),
	regexp.MustCompile(`(?i)Description\s+Quantity\s+Rate\s+Amount`),
}

var (
	headerPattern = regexp.MustCompile(`(?P<dates>\d{2}/\d{2}/\d{2})\t\d{2}/\d{2}/\d{2}\t(?P<invoice_num>\d+)`)
	vendorPattern = regexp.MustCompile(`(?:Invoice|Page\s+\d+\s+of\s+\d+)\s+(?P<vendor>[^\t\n]+)\t(?P<addr_line1>[^\n]+)\n(?P<addr_line2>[^\t\n]+)`)
	billToPattern = regexp.MustCompile(`\d{2}/\d{2}/\d{2}\t\d{2}/\d{2}/\d{2}\t\d+\n+(?P<bill>.*?)\n`)
	itemPattern   = regexp.MustCompile(`^(?P<desc>.*?)\s+(?P<qty>-?[\d,]+\.\d{2})\s+(?P<rate>-?[\d,]+\.\d{2})\s+(?P<amt>-?[\d,]+\.\d{2})\s*$`)
	totalPattern  = regexp.MustCompile(`Total USD\s+\$?(?P<total>-?[\d,]+\.\d{2})`)
)

// stopKeywords mark lines that are never description continuations: running
// headers, footers and table headers that repeat on every page.
var stopKeywords = []string{"Invoice", "Page ", "Account No", "Please update", "Description"}

type Parser struct{}

// ValidateFormat runs the fingerprint check. At least one distinctive feature
// of the expected vendor layout must be present.
func (p *Parser) ValidateFormat(text string) error {
	for _, fp := range fingerprints {
		if fp.MatchString(text) {
			return nil
		}
	}
	return &FormatError{Reason: "no layout fingerprint matched"}
}

// Parse validates the document format and extracts the structured record.
// Keys are only set when their value was actually found in the text, so the
// downstream presence validator can flag what is missing.
func (p *Parser) Parse(text string) (models.ExtractionResult, error) {
	if err := p.ValidateFormat(text); err != nil {
		return nil, err
	}

	result := models.ExtractionResult{}

	// Pages are separated by form feeds; header info lives on page one.
	pages := strings.Split(text, "\x0c")
	firstPage := pages[0]

	extractHeader(firstPage, result)
	extractVendor(firstPage, result)
	extractCustomer(firstPage, result)
	extractLineItems(pages, result)

	return result, nil
}

// extractHeader parses the issue date and invoice number. Dates are
// normalized from MM/DD/YY to ISO 8601, falling back to the raw string when
// the OCR mangled them.
func extractHeader(text string, result models.ExtractionResult) {
	m := findNamed(headerPattern, text)
	if m == nil {
		return
	}
	rawDate := m["dates"]
	if t, err := time.Parse("01/02/06", rawDate); err == nil {
		result[models.FieldDate] = t.Format("2006-01-02")
	} else {
		result[models.FieldDate] = rawDate
	}
	result[models.FieldInvoiceNumber] = strings.TrimSpace(m["invoice_num"])
}

// extractVendor parses the vendor name and joins the split address lines.
func extractVendor(text string, result models.ExtractionResult) {
	m := findNamed(vendorPattern, text)
	if m == nil {
		return
	}
	result[models.FieldVendorName] = capitalize(m["vendor"])
	result[models.FieldVendorAddress] = fmt.Sprintf("%s. %s",
		strings.TrimSpace(m["addr_line2"]), strings.TrimSpace(m["addr_line1"]))
}

// extractCustomer captures the "bill to" block following the date/invoice row.
func extractCustomer(text string, result models.ExtractionResult) {
	m := findNamed(billToPattern, text)
	if m == nil {
		return
	}
	result[models.FieldBillToName] = m["bill"]
}

// extractLineItems walks the line-item table across all pages.
//
// A line matching itemPattern starts a new item; the "Total USD" row finalizes
// the table; any other line while an item is open is treated as a description
// continuation unless it carries a stop keyword.
func extractLineItems(pages []string, result models.ExtractionResult) {
	var items []models.LineItem
	var current *models.LineItem

	var lines []string
	for _, page := range pages {
		lines = append(lines, strings.Split(page, "\n")...)
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := findNamed(itemPattern, line); m != nil {
			if current != nil {
				items = append(items, *current)
			}
			current = &models.LineItem{
				Description: strings.TrimSpace(m["desc"]),
				Quantity:    parseAmount(m["qty"]),
				Price:       parseAmount(m["rate"]),
				Total:       parseAmount(m["amt"]),
			}
			continue
		}

		if strings.Contains(line, "Total USD") {
			if m := findNamed(totalPattern, line); m != nil {
				result[models.FieldTotal] = parseAmount(m["total"])
			}
			if current != nil {
				items = append(items, *current)
				current = nil
			}
			break
		}

		if current != nil {
			if hasStopKeyword(line) {
				items = append(items, *current)
				current = nil
			} else {
				current.Description += " " + line
			}
		}
	}

	if current != nil {
		items = append(items, *current)
	}

	if len(items) > 0 {
		result[models.FieldLineItems] = items
	}
}

func hasStopKeyword(line string) bool {
	for _, kw := range stopKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// findNamed returns the named submatches of the first match, or nil.
func findNamed(re *regexp.Regexp, text string) map[string]string {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}
	return groups
}

// parseAmount converts "5,000,000.00" style figures to float64. The pattern
// that produced the string guarantees it parses once the commas are stripped.
func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// how vendor names are normalized in the output records.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
