package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/boticaplus/backend/internal/domain"
)

func salesCSV(rep domain.SalesReport) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Sales Report"})
	w.Write([]string{"Period", rep.Period.StartDate, rep.Period.EndDate, strconv.Itoa(rep.Period.Days) + " days"})
	w.Write(nil)

	writeSummaryCSV(w, rep.Summary)

	w.Write(nil)
	w.Write([]string{"Category", "Revenue", "Cost", "Profit", "Quantity"})
	for _, c := range rep.CategoryBreakdown {
		w.Write([]string{c.Category, money(c.Revenue), money(c.Cost), money(c.Profit), strconv.Itoa(c.Quantity)})
	}

	w.Write(nil)
	w.Write([]string{"Date", "Revenue", "Transactions"})
	for _, d := range rep.DailyTrends {
		w.Write([]string{d.Date, money(d.Revenue), strconv.Itoa(d.Transactions)})
	}

	w.Write(nil)
	w.Write([]string{"Payment Method", "Amount"})
	for _, p := range rep.PaymentBreakdown {
		w.Write([]string{p.Method, money(p.Amount)})
	}

	w.Write(nil)
	w.Write([]string{"Product", "Quantity Sold", "Revenue"})
	for _, p := range rep.TopProducts {
		w.Write([]string{p.Name, strconv.Itoa(p.Quantity), money(p.Revenue)})
	}

	w.Flush()
	return buf.Bytes()
}

func inventoryCSV(rep domain.InventoryReport) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Inventory Report"})
	w.Write([]string{"Generated At", rep.GeneratedAt})
	w.Write(nil)

	w.Write([]string{"Total Products", strconv.Itoa(rep.TotalProducts)})
	w.Write([]string{"Stock Value At Cost", money(rep.StockValueAtCost)})
	w.Write([]string{"Stock Value At Retail", money(rep.StockValueAtRetail)})
	w.Write([]string{"Normal Stock", strconv.Itoa(rep.NormalStockCount)})
	w.Write([]string{"Low Stock", strconv.Itoa(rep.LowStockCount)})
	w.Write([]string{"Out Of Stock", strconv.Itoa(rep.OutOfStockCount)})
	w.Write([]string{"Expiring Soon", strconv.Itoa(rep.ExpiringCount)})
	w.Write([]string{"Expired", strconv.Itoa(rep.ExpiredCount)})

	writeStockSectionCSV(w, "Low Stock Products", rep.LowStock)
	writeStockSectionCSV(w, "Out Of Stock Products", rep.OutOfStock)
	writeStockSectionCSV(w, "Expiring Products", rep.Expiring)
	writeStockSectionCSV(w, "Expired Products", rep.Expired)

	w.Flush()
	return buf.Bytes()
}

func financialCSV(rep domain.FinancialReport) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Financial Performance Report"})
	w.Write([]string{"Period", rep.Period.StartDate, rep.Period.EndDate, strconv.Itoa(rep.Period.Days) + " days"})
	w.Write(nil)

	writeSummaryCSV(w, rep.Summary)

	w.Write(nil)
	w.Write([]string{"Margin Rating", rep.MarginRating})
	w.Write([]string{"Turnover Rating", rep.TurnoverRating})

	w.Write(nil)
	w.Write([]string{"Trend Direction", rep.Trend.Direction})
	w.Write([]string{"Slope Per Day", money(rep.Trend.SlopePerDay)})
	w.Write([]string{"Projected Next Period Revenue", money(rep.Trend.NextPeriodRevenue)})

	w.Write(nil)
	w.Write([]string{"Date", "Revenue", "Transactions"})
	for _, d := range rep.HistoricalData {
		w.Write([]string{d.Date, money(d.Revenue), strconv.Itoa(d.Transactions)})
	}

	w.Flush()
	return buf.Bytes()
}

func writeSummaryCSV(w *csv.Writer, s domain.ReportSummary) {
	w.Write([]string{"Metric", "Value"})
	w.Write([]string{"Total Revenue", money(s.TotalRevenue)})
	w.Write([]string{"Total Cost", money(s.TotalCost)})
	w.Write([]string{"Gross Profit", money(s.GrossProfit)})
	w.Write([]string{"Profit Margin", percent(s.ProfitMargin)})
	w.Write([]string{"Transactions", strconv.Itoa(s.TransactionCount)})
	w.Write([]string{"Average Transaction", money(s.AverageTransaction)})
	w.Write([]string{"Daily Revenue", money(s.DailyRevenue)})
	w.Write([]string{"Daily Profit", money(s.DailyProfit)})
	w.Write([]string{"ROI", percent(s.ROI)})
	w.Write([]string{"Inventory Turnover", money(s.InventoryTurnover)})
	w.Write([]string{"Days Of Inventory", money(s.DaysInventory)})
}

func writeStockSectionCSV(w *csv.Writer, title string, products []domain.ProductStockInfo) {
	w.Write(nil)
	w.Write([]string{title})
	w.Write([]string{"Product", "Category", "Stock", "Reorder Level", "Expiry Date"})
	for _, p := range products {
		w.Write([]string{p.Name, p.Category, strconv.Itoa(p.StockInPieces), strconv.Itoa(p.ReorderLevel), p.ExpiryDate})
	}
}
