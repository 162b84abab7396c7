package domain

import "time"

// TaxRate is the flat sales tax rate applied to every checkout.
const TaxRate = 0.12

type TransactionItem struct {
	ID            int64
	TransactionID int64
	ProductID     string // identifier as supplied at checkout, kept even if the product goes away
	ProductName   string // name snapshot taken at the time of sale
	Quantity      int
	Price         float64
	Subtotal      float64
}

type Transaction struct {
	ID           int64
	TxnID        string
	EmployeeID   *int64
	EmployeeName *string
	DateTime     time.Time
	Subtotal     float64
	Tax          float64
	Total        float64
	Items        []TransactionItem
}

// TransactionSummary is the list projection: header fields plus the resolved
// employee display name (nil when the transaction has no owner).
type TransactionSummary struct {
	TxnID        string
	DateTime     time.Time
	TotalAmount  float64
	EmployeeName *string
}

// Receipt is what a successful checkout hands back to the caller.
type Receipt struct {
	TxnID        string
	NumericID    int64
	Subtotal     float64
	Tax          float64
	Total        float64
	EmployeeID   *int64
	EmployeeName *string
}
