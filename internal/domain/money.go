package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CentsPerUnit is the number of minor units in one major currency unit.
const CentsPerUnit = 100

const minorDigits = 2

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidAmountPrecision = errors.New("invalid amount precision")
	ErrAmountOverflow         = errors.New("amount overflow")
)

var half = decimal.NewFromFloat(0.5)

// ParseAmountToCents converts a major-unit decimal string ("74.25", "74,25") to cents.
func ParseAmountToCents(amount string) (int64, error) {
	amountValue := strings.TrimSpace(amount)
	if amountValue == "" {
		return 0, ErrInvalidAmount
	}

	amountValue = strings.ReplaceAll(amountValue, ",", ".")
	amountValue = strings.TrimPrefix(amountValue, "+")
	if strings.HasPrefix(amountValue, "-") {
		return 0, ErrNegativeAmount
	}

	parts := strings.Split(amountValue, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}

	integerPart := parts[0]
	fractionalPart := ""
	if len(parts) == 2 {
		fractionalPart = parts[1]
	}
	if integerPart == "" && fractionalPart == "" {
		return 0, ErrInvalidAmount
	}
	if len(parts) == 2 && fractionalPart == "" {
		return 0, ErrInvalidAmount
	}

	if integerPart == "" {
		integerPart = "0"
	}
	if !isDigits(integerPart) || (fractionalPart != "" && !isDigits(fractionalPart)) {
		return 0, ErrInvalidAmount
	}

	if len(fractionalPart) > minorDigits {
		if strings.Trim(fractionalPart[minorDigits:], "0") != "" {
			return 0, ErrInvalidAmountPrecision
		}
		fractionalPart = fractionalPart[:minorDigits]
	}
	for len(fractionalPart) < minorDigits {
		fractionalPart += "0"
	}

	major, err := strconv.ParseInt(integerPart, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrAmountOverflow
		}
		return 0, ErrInvalidAmount
	}
	if major > math.MaxInt64/CentsPerUnit {
		return 0, ErrAmountOverflow
	}
	cents := major * CentsPerUnit

	fractional, err := strconv.ParseInt(fractionalPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if fractional > math.MaxInt64-cents {
		return 0, ErrAmountOverflow
	}
	return cents + fractional, nil
}

// ValidateAmountCents rejects negative amounts.
func ValidateAmountCents(field string, cents int64) error {
	if cents < 0 {
		return NewValidationError(field, ErrNegativeAmount)
	}
	return nil
}

// RoundHalfUp rounds to the given number of decimal places, ties toward positive infinity.
func RoundHalfUp(value decimal.Decimal, places int32) decimal.Decimal {
	return value.Shift(places).Add(half).Floor().Shift(-places)
}

// CentsToDecimal returns the major-unit value of cents.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -minorDigits)
}

// DecimalToCents converts a major-unit value to cents using half-up rounding.
func DecimalToCents(value decimal.Decimal) int64 {
	return RoundHalfUp(value, minorDigits).Shift(minorDigits).IntPart()
}

// FormatCents renders cents as a grouped major-unit string, e.g. "1,234.56".
// It carries no currency symbol.
func FormatCents(cents int64) string {
	sign := ""
	magnitude := uint64(cents)
	if cents < 0 {
		sign = "-"
		magnitude = -magnitude
	}
	units := humanize.Comma(int64(magnitude / CentsPerUnit))
	return fmt.Sprintf("%s%s.%02d", sign, units, magnitude%CentsPerUnit)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
