package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const ItemNameMaxLength = 200

var (
	ErrInvalidPurchaseID = errors.New("invalid purchase id")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrItemNameTooLong   = errors.New("item name exceeds maximum length")
)

// PurchaseRecord is a dated, categorized purchase supplied by the wardrobe.
type PurchaseRecord struct {
	ID           int64
	CategoryName string
	AmountCents  int64
	PurchaseDate time.Time
	ItemName     string
	CreatedAtUTC string
}

type PurchaseInput struct {
	CategoryName string
	AmountCents  int64
	PurchaseDate string
	ItemName     string
}

type PurchaseFilter struct {
	CategoryName string
	Window       *PeriodWindow
}

type PurchaseDeleteResult struct {
	PurchaseID   int64  `json:"purchase_id"`
	DeletedAtUTC string `json:"deleted_at_utc"`
}

func NormalizePurchaseInput(input PurchaseInput) (PurchaseRecord, error) {
	category, err := NormalizeCategoryName(input.CategoryName)
	if err != nil {
		return PurchaseRecord{}, NewValidationError("category", err)
	}

	if err := ValidateAmountCents("amount", input.AmountCents); err != nil {
		return PurchaseRecord{}, err
	}

	purchaseDate, err := ParseDate(input.PurchaseDate)
	if err != nil {
		return PurchaseRecord{}, NewValidationError("purchase_date", err)
	}

	itemName := strings.TrimSpace(input.ItemName)
	if len(itemName) > ItemNameMaxLength {
		return PurchaseRecord{}, NewValidationError("item_name", ErrItemNameTooLong)
	}

	return PurchaseRecord{
		CategoryName: category,
		AmountCents:  input.AmountCents,
		PurchaseDate: purchaseDate,
		ItemName:     itemName,
	}, nil
}

type purchaseRecordJSON struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"category_name"`
	AmountCents  int64  `json:"amount_minor"`
	PurchaseDate string `json:"purchase_date"`
	ItemName     string `json:"item_name,omitempty"`
	CreatedAtUTC string `json:"created_at_utc,omitempty"`
}

func (r PurchaseRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(purchaseRecordJSON{
		ID:           r.ID,
		CategoryName: r.CategoryName,
		AmountCents:  r.AmountCents,
		PurchaseDate: FormatDate(r.PurchaseDate),
		ItemName:     r.ItemName,
		CreatedAtUTC: r.CreatedAtUTC,
	})
}
