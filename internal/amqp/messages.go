package amqp

import (
	"encoding/json"
	"time"

	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/notify"
)

// AlertMessage is the payload published for one notifiable budget alert.
type AlertMessage struct {
	MessageID      string    `json:"message_id"`
	BudgetID       int64     `json:"budget_id"`
	BudgetName     string    `json:"budget_name"`
	Category       string    `json:"category,omitempty"`
	Severity       string    `json:"severity"`
	Message        string    `json:"message"`
	AmountMinor    int64     `json:"amount_over_or_remaining_minor"`
	UsedPercentage string    `json:"used_percentage"`
	WindowStart    string    `json:"window_start"`
	WindowEnd      string    `json:"window_end"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewAlertMessage(event notify.AlertEvent) *AlertMessage {
	timestamp, err := time.Parse(time.RFC3339Nano, event.EmittedAtUTC)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	return &AlertMessage{
		MessageID:      event.MessageID,
		BudgetID:       event.BudgetID,
		BudgetName:     event.BudgetName,
		Category:       event.Alert.Category,
		Severity:       event.Alert.Severity.String(),
		Message:        event.Alert.Message,
		AmountMinor:    event.Alert.AmountCents,
		UsedPercentage: event.Alert.UsedPercentage.String(),
		WindowStart:    event.Window.Start.Format(domain.DateLayout),
		WindowEnd:      event.Window.End.Format(domain.DateLayout),
		Timestamp:      timestamp,
	}
}

func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
