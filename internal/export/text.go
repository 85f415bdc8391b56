package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/boticaplus/backend/internal/domain"
)

const textRule = "========================================"

func salesText(rep domain.SalesReport) []byte {
	var buf bytes.Buffer

	writeTextHeader(&buf, "SALES REPORT")
	fmt.Fprintf(&buf, "Period: %s to %s (%d days)\n\n", dayOf(rep.Period.StartDate), dayOf(rep.Period.EndDate), rep.Period.Days)

	writeSummaryText(&buf, rep.Summary)

	writeTextSection(&buf, "SALES BY CATEGORY")
	tw := newTabWriter(&buf)
	fmt.Fprintln(tw, "Category\tRevenue\tProfit\tQty")
	for _, c := range rep.CategoryBreakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.Category, money(c.Revenue), money(c.Profit), c.Quantity)
	}
	tw.Flush()

	writeTextSection(&buf, "PAYMENT METHODS")
	tw = newTabWriter(&buf)
	for _, p := range rep.PaymentBreakdown {
		fmt.Fprintf(tw, "%s\t%s\n", p.Method, money(p.Amount))
	}
	tw.Flush()

	writeTextSection(&buf, "TOP PRODUCTS")
	tw = newTabWriter(&buf)
	fmt.Fprintln(tw, "#\tProduct\tQty\tRevenue")
	for i, p := range rep.TopProducts {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, p.Name, p.Quantity, money(p.Revenue))
	}
	tw.Flush()

	return buf.Bytes()
}

func inventoryText(rep domain.InventoryReport) []byte {
	var buf bytes.Buffer

	writeTextHeader(&buf, "INVENTORY REPORT")
	fmt.Fprintf(&buf, "Generated: %s\n\n", rep.GeneratedAt)

	tw := newTabWriter(&buf)
	fmt.Fprintf(tw, "Total Products\t%d\n", rep.TotalProducts)
	fmt.Fprintf(tw, "Stock Value (Cost)\t%s\n", money(rep.StockValueAtCost))
	fmt.Fprintf(tw, "Stock Value (Retail)\t%s\n", money(rep.StockValueAtRetail))
	fmt.Fprintf(tw, "Normal Stock\t%d\n", rep.NormalStockCount)
	fmt.Fprintf(tw, "Low Stock\t%d\n", rep.LowStockCount)
	fmt.Fprintf(tw, "Out Of Stock\t%d\n", rep.OutOfStockCount)
	fmt.Fprintf(tw, "Expiring Soon\t%d\n", rep.ExpiringCount)
	fmt.Fprintf(tw, "Expired\t%d\n", rep.ExpiredCount)
	tw.Flush()

	writeStockSectionText(&buf, "LOW STOCK", rep.LowStock)
	writeStockSectionText(&buf, "OUT OF STOCK", rep.OutOfStock)
	writeStockSectionText(&buf, "EXPIRING SOON", rep.Expiring)
	writeStockSectionText(&buf, "EXPIRED", rep.Expired)

	return buf.Bytes()
}

func financialText(rep domain.FinancialReport) []byte {
	var buf bytes.Buffer

	writeTextHeader(&buf, "FINANCIAL PERFORMANCE REPORT")
	fmt.Fprintf(&buf, "Period: %s to %s (%d days)\n\n", dayOf(rep.Period.StartDate), dayOf(rep.Period.EndDate), rep.Period.Days)

	writeSummaryText(&buf, rep.Summary)

	writeTextSection(&buf, "RATINGS")
	tw := newTabWriter(&buf)
	fmt.Fprintf(tw, "Profit Margin\t%s\n", rep.MarginRating)
	fmt.Fprintf(tw, "Inventory Turnover\t%s\n", rep.TurnoverRating)
	tw.Flush()

	writeTextSection(&buf, "TREND")
	tw = newTabWriter(&buf)
	fmt.Fprintf(tw, "Direction\t%s\n", rep.Trend.Direction)
	fmt.Fprintf(tw, "Slope Per Day\t%s\n", money(rep.Trend.SlopePerDay))
	fmt.Fprintf(tw, "Projected Revenue\t%s\n", money(rep.Trend.NextPeriodRevenue))
	tw.Flush()

	return buf.Bytes()
}

func writeTextHeader(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, textRule)
	fmt.Fprintln(buf, centerText(title, len(textRule)))
	fmt.Fprintln(buf, textRule)
}

func writeTextSection(buf *bytes.Buffer, title string) {
	fmt.Fprintf(buf, "\n--- %s ---\n", title)
}

func writeSummaryText(buf *bytes.Buffer, s domain.ReportSummary) {
	writeTextSection(buf, "SUMMARY")
	tw := newTabWriter(buf)
	fmt.Fprintf(tw, "Total Revenue\t%s\n", money(s.TotalRevenue))
	fmt.Fprintf(tw, "Total Cost\t%s\n", money(s.TotalCost))
	fmt.Fprintf(tw, "Gross Profit\t%s\n", money(s.GrossProfit))
	fmt.Fprintf(tw, "Profit Margin\t%s\n", percent(s.ProfitMargin))
	fmt.Fprintf(tw, "Transactions\t%d\n", s.TransactionCount)
	fmt.Fprintf(tw, "Avg Transaction\t%s\n", money(s.AverageTransaction))
	fmt.Fprintf(tw, "Daily Revenue\t%s\n", money(s.DailyRevenue))
	fmt.Fprintf(tw, "Daily Profit\t%s\n", money(s.DailyProfit))
	fmt.Fprintf(tw, "ROI\t%s\n", percent(s.ROI))
	fmt.Fprintf(tw, "Inventory Turnover\t%s\n", money(s.InventoryTurnover))
	fmt.Fprintf(tw, "Days Of Inventory\t%s\n", money(s.DaysInventory))
	tw.Flush()
}

func writeStockSectionText(buf *bytes.Buffer, title string, products []domain.ProductStockInfo) {
	if len(products) == 0 {
		return
	}
	writeTextSection(buf, title)
	tw := newTabWriter(buf)
	fmt.Fprintln(tw, "Product\tCategory\tStock\tReorder\tExpiry")
	for _, p := range products {
		expiry := p.ExpiryDate
		if expiry == "" {
			expiry = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", p.Name, p.Category, p.StockInPieces, p.ReorderLevel, expiry)
	}
	tw.Flush()
}

func newTabWriter(buf *bytes.Buffer) *tabwriter.Writer {
	return tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
