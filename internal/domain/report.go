package domain

import "github.com/shopspring/decimal"

// CategorySpend is the spend of one category inside a window.
type CategorySpend struct {
	Name       string `json:"name"`
	SpentCents int64  `json:"spent_minor"`
	ItemCount  int    `json:"item_count"`
}

// SpendSummary is a view over purchase records for one window. ByCategory keeps
// first-seen order.
type SpendSummary struct {
	Window     PeriodWindow    `json:"window"`
	TotalCents int64           `json:"total_spent_minor"`
	ByCategory []CategorySpend `json:"by_category"`
	ItemCount  int             `json:"item_count"`
}

// CategorySpent returns the spend recorded for name, matched case-insensitively.
func (s SpendSummary) CategorySpent(name string) (int64, bool) {
	key := CategoryKey(name)
	for _, category := range s.ByCategory {
		if CategoryKey(category.Name) == key {
			return category.SpentCents, true
		}
	}
	return 0, false
}

// Trend compares two consecutive summaries. ChangePercentage is nil when the
// previous period had no spend.
type Trend struct {
	ChangeCents      int64            `json:"change_minor"`
	ChangePercentage *decimal.Decimal `json:"change_percentage"`
}

// CategoryVariance is planned against actual spend for one category.
type CategoryVariance struct {
	Name           string          `json:"name"`
	Planned        bool            `json:"planned"`
	PlannedCents   int64           `json:"planned_minor"`
	SpentCents     int64           `json:"spent_minor"`
	RemainingCents int64           `json:"remaining_minor"`
	UsedPercentage decimal.Decimal `json:"used_percentage"`
}
