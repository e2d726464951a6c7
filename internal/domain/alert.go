package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Severity is ordered: none < approaching < warning < exceeded.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityApproaching
	SeverityWarning
	SeverityExceeded
)

const (
	WarningCodeBudgetApproaching = "BUDGET_APPROACHING"
	WarningCodeBudgetLimit       = "BUDGET_LIMIT_REACHED"
	WarningCodeBudgetExceeded    = "BUDGET_EXCEEDED"
)

var severityNames = map[Severity]string{
	SeverityNone:        "none",
	SeverityApproaching: "approaching",
	SeverityWarning:     "warning",
	SeverityExceeded:    "exceeded",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ShouldNotify is true for severities that go to notification dispatch.
func (s Severity) ShouldNotify() bool {
	return s >= SeverityApproaching
}

// WarningCode maps a severity onto the envelope warning code, empty for none.
func (s Severity) WarningCode() string {
	switch s {
	case SeverityApproaching:
		return WarningCodeBudgetApproaching
	case SeverityWarning:
		return WarningCodeBudgetLimit
	case SeverityExceeded:
		return WarningCodeBudgetExceeded
	default:
		return ""
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	severity, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = severity
	return nil
}

func ParseSeverity(value string) (Severity, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for severity, name := range severityNames {
		if name == normalized {
			return severity, nil
		}
	}
	return SeverityNone, fmt.Errorf("unknown severity %q", value)
}

// Alert classifies spend against a limit. AmountCents is the remaining amount
// for none/approaching/warning and the overage for exceeded.
type Alert struct {
	Category       string          `json:"category,omitempty"`
	Severity       Severity        `json:"severity"`
	Message        string          `json:"message"`
	AmountCents    int64           `json:"amount_over_or_remaining_minor"`
	UsedPercentage decimal.Decimal `json:"used_percentage"`
}
