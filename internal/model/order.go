package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one entry of an order.
type LineItem struct {
	Name  string          `json:"name" binding:"required"`
	Qty   int             `json:"qty" binding:"min=1"`
	Price decimal.Decimal `json:"price"`
}

// Subtotal is Qty * Price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// LineItems is persisted as a JSONB array.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]LineItem(l))
}

func (l *LineItems) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", src)
	}

	items := LineItems{}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to decode line items: %w", err)
	}
	*l = items
	return nil
}

// Total sums the subtotals.
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Subtotal())
	}
	return total
}

type Order struct {
	ID            int64           `json:"id" db:"id"`
	MemberID      int64           `json:"memberId" db:"member_id"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Status        OrderStatus     `json:"status" db:"status"`
	Items         LineItems       `json:"items" db:"items"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	ChargedAt     *time.Time      `json:"chargedAt" db:"charged_at"`
	Timestamps

	Member *Member `json:"Member,omitempty" db:"-"`
}

type OrderRequest struct {
	MemberID      int64            `json:"memberId" binding:"required,min=1"`
	Total         *decimal.Decimal `json:"total"`
	Status        OrderStatus      `json:"status" binding:"omitempty,enum"`
	Items         []LineItem       `json:"items" binding:"dive"`
	PaymentMethod PaymentMethod    `json:"paymentMethod" binding:"omitempty,enum"`
}

// Apply builds the order; the total is derived from the items unless given.
func (r *OrderRequest) Apply(o *Order) {
	o.MemberID = r.MemberID
	o.Items = LineItems(r.Items)
	if o.Items == nil {
		o.Items = LineItems{}
	}
	if r.Total != nil {
		o.Total = *r.Total
	} else {
		o.Total = o.Items.Total()
	}
	o.Status = r.Status
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	o.PaymentMethod = r.PaymentMethod
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentMethodCardToken
	}
}

type OrderFilter struct {
	Status OrderStatus `form:"status" binding:"omitempty,enum"`
}

// ChargeTabsResult summarizes a tab settlement run.
type ChargeTabsResult struct {
	Charged int             `json:"charged"`
	Total   decimal.Decimal `json:"total"`
	Orders  []*Order        `json:"-"`
}
