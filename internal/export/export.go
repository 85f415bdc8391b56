// Package export renders finished reports as downloadable documents. It
// consumes the fully derived Report payloads only; no metric is computed
// here, and all numeric formatting is presentation-side.
package export

import (
	"fmt"

	"github.com/boticaplus/backend/internal/domain"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatTXT Format = "txt"
	FormatPDF Format = "pdf"
)

// ErrUnsupportedFormat is returned for formats outside csv/txt/pdf.
var ErrUnsupportedFormat = fmt.Errorf("unsupported export format")

// Artifact is a rendered document ready to stream or upload.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParseFormat validates a caller-supplied format string.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatCSV, FormatTXT, FormatPDF:
		return Format(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
}

// SalesReport renders the sales report in the requested format.
func SalesReport(rep domain.SalesReport, format Format) (*Artifact, error) {
	name := fmt.Sprintf("sales_report_%s_%s", dayOf(rep.Period.StartDate), dayOf(rep.Period.EndDate))
	switch format {
	case FormatCSV:
		return newArtifact(name, format, salesCSV(rep)), nil
	case FormatTXT:
		return newArtifact(name, format, salesText(rep)), nil
	case FormatPDF:
		data, err := salesPDF(rep)
		if err != nil {
			return nil, err
		}
		return newArtifact(name, format, data), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// InventoryReport renders the inventory report in the requested format.
func InventoryReport(rep domain.InventoryReport, format Format) (*Artifact, error) {
	name := fmt.Sprintf("inventory_report_%s", dayOf(rep.GeneratedAt))
	switch format {
	case FormatCSV:
		return newArtifact(name, format, inventoryCSV(rep)), nil
	case FormatTXT:
		return newArtifact(name, format, inventoryText(rep)), nil
	case FormatPDF:
		data, err := inventoryPDF(rep)
		if err != nil {
			return nil, err
		}
		return newArtifact(name, format, data), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// FinancialReport renders the financial report in the requested format.
func FinancialReport(rep domain.FinancialReport, format Format) (*Artifact, error) {
	name := fmt.Sprintf("financial_report_%s_%s", dayOf(rep.Period.StartDate), dayOf(rep.Period.EndDate))
	switch format {
	case FormatCSV:
		return newArtifact(name, format, financialCSV(rep)), nil
	case FormatTXT:
		return newArtifact(name, format, financialText(rep)), nil
	case FormatPDF:
		data, err := financialPDF(rep)
		if err != nil {
			return nil, err
		}
		return newArtifact(name, format, data), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func newArtifact(name string, format Format, data []byte) *Artifact {
	return &Artifact{
		Filename:    fmt.Sprintf("%s.%s", name, format),
		ContentType: contentType(format),
		Data:        data,
	}
}

func contentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatTXT:
		return "text/plain"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// dayOf trims an RFC3339 timestamp down to its date part.
func dayOf(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
