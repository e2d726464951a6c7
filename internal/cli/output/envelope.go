package output

import (
	"time"

	"wardrobe-budget/internal/domain"
)

const (
	APIVersionV1 = "v1"
	ToolName     = "wardrobe-budget"
	FormatHuman  = "human"
	FormatJSON   = "json"
)

type Envelope struct {
	Ok       bool             `json:"ok"`
	Data     any              `json:"data"`
	Warnings []WarningPayload `json:"warnings"`
	Error    *ErrorPayload    `json:"error"`
	Meta     Meta             `json:"meta"`
}

type WarningPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type Meta struct {
	Tool         string `json:"tool"`
	APIVersion   string `json:"api_version"`
	TimestampUTC string `json:"timestamp_utc"`
}

func NewSuccessEnvelope(data any, warnings []WarningPayload) Envelope {
	return Envelope{
		Ok:       true,
		Data:     data,
		Warnings: nonNilWarnings(warnings),
		Meta:     NewMetaNow(),
	}
}

func NewErrorEnvelope(code, message string, details any, warnings []WarningPayload) Envelope {
	return Envelope{
		Ok:       false,
		Warnings: nonNilWarnings(warnings),
		Error: &ErrorPayload{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: NewMetaNow(),
	}
}

// NewAlertWarning surfaces a notifiable budget alert as an envelope warning.
func NewAlertWarning(budgetID int64, alert domain.Alert) WarningPayload {
	details := map[string]any{
		"budget_id":                      budgetID,
		"severity":                       alert.Severity.String(),
		"used_percentage":                alert.UsedPercentage.String(),
		"amount_over_or_remaining_minor": alert.AmountCents,
	}
	if alert.Category != "" {
		details["category"] = alert.Category
	}

	return WarningPayload{
		Code:    alert.Severity.WarningCode(),
		Message: alert.Message,
		Details: details,
	}
}

func NewMetaNow() Meta {
	return Meta{
		Tool:         ToolName,
		APIVersion:   APIVersionV1,
		TimestampUTC: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func nonNilWarnings(warnings []WarningPayload) []WarningPayload {
	if warnings == nil {
		return []WarningPayload{}
	}
	return warnings
}
