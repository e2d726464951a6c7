package output

import (
	"testing"

	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

func TestIsValidFormat(t *testing.T) {
	t.Parallel()

	if !IsValidFormat("human") {
		t.Fatalf("expected human to be valid")
	}
	if !IsValidFormat("json") {
		t.Fatalf("expected json to be valid")
	}
	if !IsValidFormat(" JSON ") {
		t.Fatalf("expected spaced mixed-case json to be valid")
	}
	if IsValidFormat("yaml") {
		t.Fatalf("expected yaml to be invalid")
	}
}

func TestNewSuccessEnvelopeDefaults(t *testing.T) {
	t.Parallel()

	env := NewSuccessEnvelope(map[string]any{"hello": "world"}, nil)
	if !env.Ok {
		t.Fatalf("expected ok=true")
	}
	if env.Error != nil {
		t.Fatalf("expected nil error on success")
	}
	if env.Meta.APIVersion != APIVersionV1 {
		t.Fatalf("unexpected api version: %s", env.Meta.APIVersion)
	}
	if len(env.Warnings) != 0 {
		t.Fatalf("expected empty warnings slice by default")
	}
	if env.Meta.TimestampUTC == "" {
		t.Fatalf("expected timestamp_utc to be set")
	}
}

func TestNewErrorEnvelopeCarriesTool(t *testing.T) {
	t.Parallel()

	env := NewErrorEnvelope(ErrorCodeNotFound, "budget not found", map[string]any{}, nil)
	if env.Ok || env.Error == nil || env.Error.Code != ErrorCodeNotFound {
		t.Fatalf("unexpected error envelope %+v", env)
	}
	if env.Meta.Tool != ToolName {
		t.Fatalf("expected tool %q, got %q", ToolName, env.Meta.Tool)
	}
	if env.Warnings == nil {
		t.Fatalf("expected non-nil warnings")
	}
}

func TestNewAlertWarning(t *testing.T) {
	t.Parallel()

	warning := NewAlertWarning(7, domain.Alert{
		Category:       "Shoes",
		Severity:       domain.SeverityExceeded,
		Message:        "Shoes: Budget exceeded by 50.00.",
		AmountCents:    5000,
		UsedPercentage: decimal.NewFromInt(150),
	})

	if warning.Code != domain.WarningCodeBudgetExceeded {
		t.Fatalf("expected %s, got %s", domain.WarningCodeBudgetExceeded, warning.Code)
	}
	details, ok := warning.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", warning.Details)
	}
	if details["budget_id"] != int64(7) || details["category"] != "Shoes" || details["used_percentage"] != "150" {
		t.Fatalf("unexpected details %v", details)
	}
}
