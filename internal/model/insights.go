package model

import "github.com/shopspring/decimal"

// Insights is the dashboard summary. Figures come from independent queries.
type Insights struct {
	ActiveMembers   int64           `json:"activeMembers"`
	Waitlist        int64           `json:"waitlist"`
	FrozenMembers   int64           `json:"frozenMembers"`
	DailyBookings   int64           `json:"dailyBookings"`
	CompletedToday  int64           `json:"completedToday"`
	OpenTabsRevenue decimal.Decimal `json:"openTabsRevenue"`
	PaidRevenue     decimal.Decimal `json:"paidRevenue"`
	TotalMembers    int64           `json:"totalMembers"`
	TotalStaff      int64           `json:"totalStaff"`
}
