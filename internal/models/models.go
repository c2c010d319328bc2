package models

// Field names follow the JSON files already in the data directory (camelCase).
// Timestamps are RFC 3339 strings; business dates (saleDate, purchaseDate,
// date) are whatever the front end sends, usually YYYY-MM-DD.

// User - someone allowed to log in
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash,omitempty"`
	// Password is the legacy plaintext field. It is only read so the
	// account can be upgraded to a hash on the next successful login.
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// PerformanceTier of the laptop CPU.
const (
	TierI3 = "i3"
	TierI5 = "i5"
	TierI7 = "i7"
)

// Laptop status values.
const (
	LaptopAvailable = "available"
	LaptopReserved  = "reserved"
	LaptopSold      = "sold"
)

// Laptop - one stock line. Quantity and Status are the only fields that
// change after creation.
type Laptop struct {
	ID              string  `json:"id"`
	CorporateBrand  string  `json:"corporateBrand"`
	ProductBrand    string  `json:"productBrand"`
	PerformanceTier string  `json:"performanceTier"`
	Generation      string  `json:"generation"`
	SKU             string  `json:"sku"`
	PurchasePrice   float64 `json:"purchasePrice"`
	ConditionNotes  string  `json:"conditionNotes"`
	Quantity        int     `json:"quantity"`
	Status          string  `json:"status"`
	PurchaseDate    string  `json:"purchaseDate"`
	CreatedAt       string  `json:"createdAt"`
}

// Label is how the laptop is shown in reports and exports.
func (l Laptop) Label() string {
	return l.CorporateBrand + " " + l.ProductBrand + " " + l.SKU
}

// Client - a buyer
type Client struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email,omitempty"`
	ReferralSource  string   `json:"referralSource,omitempty"`
	PurchaseHistory []string `json:"purchaseHistory"`
	SupportTickets  []string `json:"supportTickets"`
	CreatedAt       string   `json:"createdAt"`
}

// Sale payment status values.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Sale payment methods.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodCard     = "card"
)

// Sale - immutable once recorded
type Sale struct {
	ID               string  `json:"id"`
	LaptopID         string  `json:"laptopId"`
	ClientID         string  `json:"clientId"`
	SalePrice        float64 `json:"salePrice"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentMethod    string  `json:"paymentMethod"`
	SaleDate         string  `json:"saleDate"`
	CommissionEarner string  `json:"commissionEarner,omitempty"`
	CommissionAmount float64 `json:"commissionAmount,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// Commission payment status values.
const (
	CommissionPending = "pending"
	CommissionPaid    = "paid"
)

// Commission - money owed to whoever brought the sale in
type Commission struct {
	ID            string  `json:"id"`
	SaleID        string  `json:"saleId"`
	EarnerName    string  `json:"earnerName"`
	EarnerContact string  `json:"earnerContact"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"paymentStatus"`
	PayoutDate    string  `json:"payoutDate,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// Expense categories.
const (
	ExpenseTransport = "Transport"
	ExpenseFood      = "Food"
	ExpenseParts     = "Replacement parts"
	ExpenseMisc      = "Misc"
)

// Expense - immutable once recorded
type Expense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	TripBatch   string  `json:"tripBatch,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}
