package domain

// PeriodInfo describes the resolved, day-normalized reporting window.
type PeriodInfo struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// ReportSummary carries every derived financial metric so that exporters and
// dashboards never re-derive a number. All ratios are divide-by-zero guarded
// to 0 by the metrics calculator.
type ReportSummary struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalCost          float64 `json:"total_cost"`
	GrossProfit        float64 `json:"gross_profit"`
	ProfitMargin       float64 `json:"profit_margin"`
	TransactionCount   int     `json:"transaction_count"`
	AverageTransaction float64 `json:"average_transaction"`
	AverageCost        float64 `json:"average_cost"`
	DailyRevenue       float64 `json:"daily_revenue"`
	DailyCost          float64 `json:"daily_cost"`
	DailyProfit        float64 `json:"daily_profit"`
	ROI                float64 `json:"roi"`
	InventoryTurnover  float64 `json:"inventory_turnover"`
	DaysInventory      float64 `json:"days_inventory"`
}

// CategoryBreakdown aggregates line-item activity per product category.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Profit   float64 `json:"profit"`
	Quantity int     `json:"quantity"`
}

// DailyTrend is one entry of the dense, gap-free day-indexed series.
type DailyTrend struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// PaymentBreakdown aggregates completed-sale amounts per payment method.
type PaymentBreakdown struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// TopProduct is one entry of the revenue-descending product ranking.
type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// SalesReport is the full sales dashboard/export payload.
type SalesReport struct {
	Period            PeriodInfo          `json:"period"`
	Summary           ReportSummary       `json:"summary"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	DailyTrends       []DailyTrend        `json:"daily_trends"`
	PaymentBreakdown  []PaymentBreakdown  `json:"payment_breakdown"`
	TopProducts       []TopProduct        `json:"top_products"`
}

// StockStatus classifies a product's on-hand quantity. The three buckets are
// mutually exclusive and exhaustive: a zero-stock product is never low-stock.
type StockStatus string

const (
	StockOut    StockStatus = "out_of_stock"
	StockLow    StockStatus = "low_stock"
	StockNormal StockStatus = "normal_stock"
)

// ExpiryStatus classifies a product against its expiry date.
type ExpiryStatus string

const (
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryExpiring ExpiryStatus = "expiring"
	ExpiryValid    ExpiryStatus = "valid"
)

// ProductStockInfo is a single product row in the inventory report listings.
type ProductStockInfo struct {
	ProductID     string       `json:"product_id"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	StockInPieces int          `json:"stock_in_pieces"`
	ReorderLevel  int          `json:"reorder_level"`
	StockStatus   StockStatus  `json:"stock_status"`
	ExpiryStatus  ExpiryStatus `json:"expiry_status"`
	ExpiryDate    string       `json:"expiry_date,omitempty"`
}

// InventoryReport is the stock snapshot payload.
type InventoryReport struct {
	GeneratedAt        string             `json:"generated_at"`
	TotalProducts      int                `json:"total_products"`
	StockValueAtCost   float64            `json:"stock_value_at_cost"`
	StockValueAtRetail float64            `json:"stock_value_at_retail"`
	NormalStockCount   int                `json:"normal_stock_count"`
	LowStockCount      int                `json:"low_stock_count"`
	OutOfStockCount    int                `json:"out_of_stock_count"`
	ExpiredCount       int                `json:"expired_count"`
	ExpiringCount      int                `json:"expiring_count"`
	LowStock           []ProductStockInfo `json:"low_stock"`
	OutOfStock         []ProductStockInfo `json:"out_of_stock"`
	Expiring           []ProductStockInfo `json:"expiring"`
	Expired            []ProductStockInfo `json:"expired"`
}

// TrendProjection is the naive linear extrapolation over the daily revenue
// series. Nothing smarter than least squares is intended here.
type TrendProjection struct {
	SlopePerDay       float64 `json:"slope_per_day"`
	NextPeriodRevenue float64 `json:"next_period_revenue"`
	Direction         string  `json:"direction"`
}

// FinancialReport is the performance dashboard/export payload.
type FinancialReport struct {
	Period         PeriodInfo      `json:"period"`
	Summary        ReportSummary   `json:"summary"`
	MarginRating   string          `json:"margin_rating"`
	TurnoverRating string          `json:"turnover_rating"`
	Trend          TrendProjection `json:"trend"`
	HistoricalData []DailyTrend    `json:"historical_data"`
}

// Dashboard bundles the three report types for the combined dashboard view.
type Dashboard struct {
	Sales     SalesReport     `json:"sales"`
	Inventory InventoryReport `json:"inventory"`
	Financial FinancialReport `json:"financial"`
}
