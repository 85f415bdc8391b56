package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/boticaplus/backend/internal/domain"
)

func salesPDF(rep domain.SalesReport) ([]byte, error) {
	doc := newPDF("Sales Report")
	doc.subtitle(fmt.Sprintf("Period: %s to %s (%d days)", dayOf(rep.Period.StartDate), dayOf(rep.Period.EndDate), rep.Period.Days))

	doc.summaryTable(rep.Summary)

	doc.sectionTitle("Sales by Category")
	doc.tableHeader([]string{"Category", "Revenue", "Profit", "Qty"}, []float64{70, 40, 40, 20})
	for _, c := range rep.CategoryBreakdown {
		doc.tableRow([]string{c.Category, money(c.Revenue), money(c.Profit), strconv.Itoa(c.Quantity)}, []float64{70, 40, 40, 20})
	}

	doc.sectionTitle("Payment Methods")
	doc.tableHeader([]string{"Method", "Amount"}, []float64{70, 40})
	for _, p := range rep.PaymentBreakdown {
		doc.tableRow([]string{p.Method, money(p.Amount)}, []float64{70, 40})
	}

	doc.sectionTitle("Top Products")
	doc.tableHeader([]string{"Product", "Qty", "Revenue"}, []float64{100, 30, 40})
	for _, p := range rep.TopProducts {
		doc.tableRow([]string{p.Name, strconv.Itoa(p.Quantity), money(p.Revenue)}, []float64{100, 30, 40})
	}

	return doc.bytes()
}

func inventoryPDF(rep domain.InventoryReport) ([]byte, error) {
	doc := newPDF("Inventory Report")
	doc.subtitle("Generated: " + rep.GeneratedAt)

	doc.sectionTitle("Stock Overview")
	doc.kvRow("Total Products", strconv.Itoa(rep.TotalProducts))
	doc.kvRow("Stock Value (Cost)", money(rep.StockValueAtCost))
	doc.kvRow("Stock Value (Retail)", money(rep.StockValueAtRetail))
	doc.kvRow("Normal Stock", strconv.Itoa(rep.NormalStockCount))
	doc.kvRow("Low Stock", strconv.Itoa(rep.LowStockCount))
	doc.kvRow("Out Of Stock", strconv.Itoa(rep.OutOfStockCount))
	doc.kvRow("Expiring Soon", strconv.Itoa(rep.ExpiringCount))
	doc.kvRow("Expired", strconv.Itoa(rep.ExpiredCount))

	doc.stockSection("Low Stock", rep.LowStock)
	doc.stockSection("Out Of Stock", rep.OutOfStock)
	doc.stockSection("Expiring Soon", rep.Expiring)
	doc.stockSection("Expired", rep.Expired)

	return doc.bytes()
}

func financialPDF(rep domain.FinancialReport) ([]byte, error) {
	doc := newPDF("Financial Performance Report")
	doc.subtitle(fmt.Sprintf("Period: %s to %s (%d days)", dayOf(rep.Period.StartDate), dayOf(rep.Period.EndDate), rep.Period.Days))

	doc.summaryTable(rep.Summary)

	doc.sectionTitle("Ratings")
	doc.kvRow("Profit Margin", rep.MarginRating)
	doc.kvRow("Inventory Turnover", rep.TurnoverRating)

	doc.sectionTitle("Trend")
	doc.kvRow("Direction", rep.Trend.Direction)
	doc.kvRow("Slope Per Day", money(rep.Trend.SlopePerDay))
	doc.kvRow("Projected Revenue", money(rep.Trend.NextPeriodRevenue))

	return doc.bytes()
}

// pdfDoc wraps gofpdf with the house layout helpers.
type pdfDoc struct {
	pdf *gofpdf.Fpdf
}

func newPDF(title string) *pdfDoc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	return &pdfDoc{pdf: pdf}
}

func (d *pdfDoc) subtitle(text string) {
	d.pdf.SetFont("Arial", "", 10)
	d.pdf.CellFormat(0, 6, text, "", 1, "C", false, 0, "")
	d.pdf.Ln(4)
}

func (d *pdfDoc) sectionTitle(text string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Arial", "B", 12)
	d.pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
}

func (d *pdfDoc) tableHeader(cells []string, widths []float64) {
	d.pdf.SetFont("Arial", "B", 9)
	d.pdf.SetFillColor(230, 230, 230)
	for i, cell := range cells {
		d.pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *pdfDoc) tableRow(cells []string, widths []float64) {
	d.pdf.SetFont("Arial", "", 9)
	for i, cell := range cells {
		d.pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *pdfDoc) kvRow(label, value string) {
	d.pdf.SetFont("Arial", "", 10)
	d.pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	d.pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (d *pdfDoc) summaryTable(s domain.ReportSummary) {
	d.sectionTitle("Summary")
	d.kvRow("Total Revenue", money(s.TotalRevenue))
	d.kvRow("Total Cost", money(s.TotalCost))
	d.kvRow("Gross Profit", money(s.GrossProfit))
	d.kvRow("Profit Margin", percent(s.ProfitMargin))
	d.kvRow("Transactions", strconv.Itoa(s.TransactionCount))
	d.kvRow("Average Transaction", money(s.AverageTransaction))
	d.kvRow("Daily Revenue", money(s.DailyRevenue))
	d.kvRow("Daily Profit", money(s.DailyProfit))
	d.kvRow("ROI", percent(s.ROI))
	d.kvRow("Inventory Turnover", money(s.InventoryTurnover))
	d.kvRow("Days Of Inventory", money(s.DaysInventory))
}

func (d *pdfDoc) stockSection(title string, products []domain.ProductStockInfo) {
	if len(products) == 0 {
		return
	}
	d.sectionTitle(title)
	widths := []float64{70, 40, 20, 20, 30}
	d.tableHeader([]string{"Product", "Category", "Stock", "Reorder", "Expiry"}, widths)
	for _, p := range products {
		expiry := p.ExpiryDate
		if expiry == "" {
			expiry = "-"
		}
		d.tableRow([]string{p.Name, p.Category, strconv.Itoa(p.StockInPieces), strconv.Itoa(p.ReorderLevel), expiry}, widths)
	}
}

func (d *pdfDoc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
