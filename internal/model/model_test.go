package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemsScanAndTotal(t *testing.T) {
	var items LineItems
	require.NoError(t, items.Scan([]byte(`[{"name":"Smoothie","qty":2,"price":6.25},{"name":"Towel","qty":1,"price":0}]`)))

	require.Len(t, items, 2)
	assert.Equal(t, "Smoothie", items[0].Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(items.Total()))

	require.NoError(t, items.Scan(nil))
	assert.NotNil(t, items)
	assert.Empty(t, items)

	assert.Error(t, items.Scan(42))
}

func TestLineItemsValueNeverNull(t *testing.T) {
	var items LineItems
	v, err := items.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestOrderRequestDerivesTotal(t *testing.T) {
	req := OrderRequest{
		MemberID: 5,
		Items: []LineItem{
			{Name: "Massage oil", Qty: 1, Price: decimal.RequireFromString("12.50")},
			{Name: "Protein bar", Qty: 2, Price: decimal.RequireFromString("3.00")},
		},
	}
	var o Order
	req.Apply(&o)

	assert.True(t, decimal.RequireFromString("18.50").Equal(o.Total))
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, PaymentMethodCardToken, o.PaymentMethod)

	explicit := decimal.RequireFromString("20")
	req.Total = &explicit
	req.Status = OrderStatusTab
	req.Apply(&o)
	assert.True(t, explicit.Equal(o.Total))
	assert.Equal(t, OrderStatusTab, o.Status)
}

func TestEnumsRejectUnknownValues(t *testing.T) {
	valid := []Enum{
		MemberStatusPendingApproval, MemberTierMedicalOnly, StaffRoleFrontDesk,
		ServiceTypeConsultation, AppointmentStatusNoShow, OrderStatusTab,
		PaymentMethodCardToken, RecordTypePhysio, SubscriptionTypeAnnual,
		SubscriptionStatusPaused, NoteCategoryFollowUp, ProductCategorySubscription,
		ContentCategoryPDF, InvoiceStatusUnpaid,
	}
	for _, e := range valid {
		assert.True(t, e.Valid(), "%v", e)
	}

	invalid := []Enum{
		MemberStatus("Pending"), MemberTier(""), StaffRole("admin"),
		ServiceType("class"), AppointmentStatus("Scheduled"), OrderStatus("Unpaid"),
		PaymentMethod("Card"), RecordType("Xray"), SubscriptionType("Weekly"),
		SubscriptionStatus("Expired"), NoteCategory("Random"), ProductCategory("Physical Product"),
		ContentCategory("pdf"), InvoiceStatus("Tab"),
	}
	for _, e := range invalid {
		assert.False(t, e.Valid(), "%v", e)
	}
}

func TestTimeSince(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{time.Minute, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{2 * time.Hour, "2h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeSince(now.Add(-tt.ago), now), tt.ago.String())
	}
}

func TestResourceScheduleKeepsInsertionOrder(t *testing.T) {
	s := NewResourceSchedule()
	s.Append("Studio B", &Appointment{ID: 1})
	s.Append(UnassignedResource, &Appointment{ID: 2})
	s.Append("Studio A", &Appointment{ID: 3})
	s.Append("Studio B", &Appointment{ID: 4})

	assert.Equal(t, []string{"Studio B", "Unassigned", "Studio A"}, s.Keys())
	assert.Len(t, s.Group("Studio B"), 2)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	body := string(data)
	b := strings.Index(body, `"Studio B"`)
	u := strings.Index(body, `"Unassigned"`)
	a := strings.Index(body, `"Studio A"`)
	assert.True(t, b < u && u < a, body)

	var decoded map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded["Studio B"], 2)
}

func TestEmptyResourceScheduleEncodesAsObject(t *testing.T) {
	data, err := json.Marshal(NewResourceSchedule())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestInsightsRenderZeroSumsAsNumbers(t *testing.T) {
	data, err := json.Marshal(Insights{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"openTabsRevenue":0`)
	assert.Contains(t, string(data), `"paidRevenue":0`)
}

func TestMemberDetailNullSubscription(t *testing.T) {
	data, err := json.Marshal(MemberDetail{
		Member:         Member{ID: 5, Name: "Ada"},
		Appointments:   []*Appointment{},
		Orders:         []*Order{},
		MedicalRecords: []*MedicalRecord{},
		MemberNotes:    []*MemberNote{},
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Ada", decoded["name"])
	assert.Contains(t, decoded, "Subscription")
	assert.Nil(t, decoded["Subscription"])
	assert.Equal(t, []interface{}{}, decoded["MemberNotes"])
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("club", 2*3600)
	w := DayWindow(time.Date(2024, 3, 10, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), w.From)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), w.To)
}

func TestSubscriptionDefaultsNextBilling(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	var s Subscription
	(&SubscriptionRequest{Type: SubscriptionTypeAnnual, StartDate: &start}).Apply(&s, start)

	require.NotNil(t, s.NextBillingDate)
	assert.Equal(t, start.AddDate(1, 0, 0), *s.NextBillingDate)
	assert.Equal(t, SubscriptionStatusActive, s.Status)
}

func TestInvoiceFromOrder(t *testing.T) {
	placed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	charged := placed.Add(48 * time.Hour)

	paid := InvoiceFromOrder(&Order{
		ID: 4, MemberID: 5, Total: decimal.RequireFromString("50.00"), Status: OrderStatusPaid,
		ChargedAt: &charged, Timestamps: Timestamps{CreatedAt: placed},
		Member: &Member{Name: "John Doe"},
	})
	assert.Equal(t, InvoiceStatusPaid, paid.Status)
	assert.Equal(t, "John Doe", paid.CustomerName)
	assert.True(t, paid.Date.Equal(charged))

	for _, status := range []OrderStatus{OrderStatusTab, OrderStatusPending} {
		inv := InvoiceFromOrder(&Order{ID: 6, Status: status, Timestamps: Timestamps{CreatedAt: placed}})
		assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
		assert.Empty(t, inv.CustomerName)
		assert.True(t, inv.Date.Equal(placed))
	}
}

func TestProductRequestDefaults(t *testing.T) {
	var p Product
	(&ProductRequest{Name: "PT Session", Price: decimal.RequireFromString("49.999")}).Apply(&p)

	assert.Equal(t, ProductCategoryService, p.Category)
	assert.Equal(t, "50", p.Price.String())

	var item ContentItem
	(&ContentRequest{Title: "Welcome", URL: "https://example.com/v.mp4"}).Apply(&item)
	assert.Equal(t, ContentCategoryVideo, item.Category)
}
