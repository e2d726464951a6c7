package reporting

import (
	"sort"

	"wardrobe-budget/internal/domain"
)

var trendPercentagePlaces int32 = 1

// Aggregate sums the records that fall inside window. Categories are grouped
// case-insensitively under their first-seen name and listed in first-seen
// order. records is not modified.
func Aggregate(records []domain.PurchaseRecord, window domain.PeriodWindow) (domain.SpendSummary, error) {
	byCategory := make([]domain.CategorySpend, 0)
	indexByKey := map[string]int{}
	var totalCents int64
	itemCount := 0

	for _, record := range records {
		if record.AmountCents < 0 {
			return domain.SpendSummary{}, domain.NewValidationError("amount", domain.ErrNegativeAmount)
		}
		if !window.Contains(record.PurchaseDate) {
			continue
		}

		key := domain.CategoryKey(record.CategoryName)
		idx, ok := indexByKey[key]
		if !ok {
			idx = len(byCategory)
			indexByKey[key] = idx
			byCategory = append(byCategory, domain.CategorySpend{Name: record.CategoryName})
		}
		byCategory[idx].SpentCents += record.AmountCents
		byCategory[idx].ItemCount++

		totalCents += record.AmountCents
		itemCount++
	}

	return domain.SpendSummary{
		Window:     window,
		TotalCents: totalCents,
		ByCategory: byCategory,
		ItemCount:  itemCount,
	}, nil
}

// CompareTrend reports the change from previous to current.
func CompareTrend(current, previous domain.SpendSummary) domain.Trend {
	change := current.TotalCents - previous.TotalCents
	trend := domain.Trend{ChangeCents: change}

	pct, err := domain.Percentage(change, previous.TotalCents, trendPercentagePlaces)
	if err == nil {
		trend.ChangePercentage = &pct
	}
	return trend
}

// SortRecordsDeterministic orders records by date, then category, then id.
func SortRecordsDeterministic(records []domain.PurchaseRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].PurchaseDate.Equal(records[j].PurchaseDate) {
			return records[i].PurchaseDate.Before(records[j].PurchaseDate)
		}
		if records[i].CategoryName != records[j].CategoryName {
			return records[i].CategoryName < records[j].CategoryName
		}
		return records[i].ID < records[j].ID
	})
}

// TopCategories returns up to n categories by spend, highest first; ties keep
// first-seen order.
func TopCategories(summary domain.SpendSummary, n int) []domain.CategorySpend {
	top := make([]domain.CategorySpend, len(summary.ByCategory))
	copy(top, summary.ByCategory)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].SpentCents > top[j].SpentCents
	})
	if n >= 0 && n < len(top) {
		top = top[:n]
	}
	return top
}
