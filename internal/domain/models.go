// internal/domain/models.go
package domain

import "time"

// SaleStatus is the lifecycle state of a sale. Only completed sales
// participate in revenue and profit aggregation.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusVoided    SaleStatus = "voided"
	SaleStatusRefunded  SaleStatus = "refunded"
)

// PaymentMethod identifies how a sale was paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentDigital      PaymentMethod = "digital"
	PaymentGCash        PaymentMethod = "gcash"
	PaymentRegistration PaymentMethod = "registration"
)

// DefaultReorderLevel is applied when a product has no reorder threshold set.
const DefaultReorderLevel = 10

// SaleRecord represents a point-of-sale transaction header.
type SaleRecord struct {
	ID            string        `json:"id" db:"id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	Status        SaleStatus    `json:"status" db:"status"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	CustomerID    *string       `json:"customer_id,omitempty" db:"customer_id"`
}

// IsCompleted reports whether the sale counts toward any aggregation.
func (s SaleRecord) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// SaleLineItem is a single product line on a sale. TotalPrice may carry
// rounding independent of Quantity*UnitPrice.
type SaleLineItem struct {
	SaleID     string  `json:"sale_id" db:"sale_id"`
	ProductID  string  `json:"product_id" db:"product_id"`
	Quantity   int     `json:"quantity" db:"quantity"`
	UnitPrice  float64 `json:"unit_price" db:"unit_price"`
	TotalPrice float64 `json:"total_price" db:"total_price"`
}

// Product is a pharmacy inventory item. Category, CostPrice, ReorderLevel and
// ExpiryDate come back nullable from the data source; defaulting is
// centralized in the accessor methods below rather than at every use site.
type Product struct {
	ID            string     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Category      *string    `json:"category,omitempty" db:"category"`
	CostPrice     *float64   `json:"cost_price,omitempty" db:"cost_price"`
	PricePerPiece float64    `json:"price_per_piece" db:"price_per_piece"`
	StockInPieces int        `json:"stock_in_pieces" db:"stock_in_pieces"`
	ReorderLevel  *int       `json:"reorder_level,omitempty" db:"reorder_level"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
}

// CategoryName returns the product category, defaulting to "Uncategorized"
// for missing or blank values.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return "Uncategorized"
	}
	if c := *p.Category; c != "" {
		return c
	}
	return "Uncategorized"
}

// CostPriceValue returns the unit cost, defaulting to 0 when unknown.
func (p Product) CostPriceValue() float64 {
	if p.CostPrice == nil {
		return 0
	}
	return *p.CostPrice
}

// ReorderThreshold returns the low-stock threshold, defaulting to 10.
func (p Product) ReorderThreshold() int {
	if p.ReorderLevel == nil {
		return DefaultReorderLevel
	}
	return *p.ReorderLevel
}

// UserRole gates access to the administration endpoints.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RolePharmacist UserRole = "pharmacist"
	RoleCashier    UserRole = "cashier"
)

// User is a staff account managed through the administration API.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         UserRole  `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest is the payload for creating a staff account.
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required"`
	FullName string   `json:"full_name"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role" binding:"required"`
}

// UpdateUserRequest carries optional field updates for a staff account.
type UpdateUserRequest struct {
	FullName *string   `json:"full_name,omitempty"`
	Password *string   `json:"password,omitempty"`
	Role     *UserRole `json:"role,omitempty"`
	Active   *bool     `json:"active,omitempty"`
}

// ActivityLog is an append-only audit record of a user action.
type ActivityLog struct {
	ID        string    `json:"id" db:"id"`
	Actor     string    `json:"actor" db:"actor"`
	Action    string    `json:"action" db:"action"`
	Entity    string    `json:"entity" db:"entity"`
	Detail    string    `json:"detail" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
