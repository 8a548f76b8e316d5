package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the billing view of an order and shares its id. There is no
// invoice table.
type Invoice struct {
	ID           int64           `json:"id"`
	MemberID     int64           `json:"memberId"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	Status       InvoiceStatus   `json:"status"`
	Date         time.Time       `json:"date"`
}

// InvoiceFromOrder dates a paid invoice by its charge, anything else by
// when the order was placed.
func InvoiceFromOrder(o *Order) *Invoice {
	inv := &Invoice{
		ID:       o.ID,
		MemberID: o.MemberID,
		Amount:   o.Total,
		Status:   InvoiceStatusUnpaid,
		Date:     o.CreatedAt,
	}
	if o.Member != nil {
		inv.CustomerName = o.Member.Name
	}
	if o.Status == OrderStatusPaid {
		inv.Status = InvoiceStatusPaid
		if o.ChargedAt != nil {
			inv.Date = *o.ChargedAt
		}
	}
	return inv
}

type InvoiceFilter struct {
	Status InvoiceStatus `form:"status" binding:"omitempty,enum"`
}
