package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"wardrobe-budget/internal/domain"
)

const (
	utcKeySuffix   = "_utc"
	minorKeySuffix = "_minor"
)

func IsValidFormat(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case FormatHuman, FormatJSON:
		return true
	default:
		return false
	}
}

func Print(w io.Writer, format string, envelope Envelope) error {
	SetProcessExitCodeFromEnvelope(envelope)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		payload, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json envelope: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(payload)); err != nil {
			return fmt.Errorf("write json output: %w", err)
		}
		return nil
	case FormatHuman:
		return printHuman(w, envelope)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func printHuman(w io.Writer, envelope Envelope) error {
	status := "OK"
	if !envelope.Ok {
		status = "ERROR"
	}

	if _, err := fmt.Fprintf(w, "[%s] %s\n", status, ToolName); err != nil {
		return err
	}

	if !envelope.Ok && envelope.Error != nil {
		if _, err := fmt.Fprintf(w, "%s: %s\n", envelope.Error.Code, envelope.Error.Message); err != nil {
			return err
		}
	}

	for _, warning := range envelope.Warnings {
		if _, err := fmt.Fprintf(w, "warning[%s]: %s\n", warning.Code, warning.Message); err != nil {
			return err
		}
	}

	if envelope.Data != nil {
		payload, err := json.MarshalIndent(humanizeData(envelope.Data), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal human data: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", payload); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "tool=%s api=%s timestamp_utc=%s\n", envelope.Meta.Tool, envelope.Meta.APIVersion, envelope.Meta.TimestampUTC); err != nil {
		return err
	}

	return nil
}

// humanizeData rewrites *_utc timestamps into the display timezone and
// *_minor amounts into grouped major units. The JSON format never goes
// through here.
func humanizeData(data any) any {
	var location *time.Location
	if loaded := DisplayLocation(); loaded != time.UTC {
		location = loaded
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}

	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.UseNumber()
	var node any
	if err := decoder.Decode(&node); err != nil {
		return data
	}

	return humanizeNode(node, "", location)
}

func humanizeNode(node any, key string, location *time.Location) any {
	normalizedKey := strings.ToLower(strings.TrimSpace(key))

	switch value := node.(type) {
	case map[string]any:
		updated := make(map[string]any, len(value))
		for childKey, childValue := range value {
			updated[childKey] = humanizeNode(childValue, childKey, location)
		}
		return updated
	case []any:
		updated := make([]any, 0, len(value))
		for _, item := range value {
			updated = append(updated, humanizeNode(item, key, location))
		}
		return updated
	case json.Number:
		if !strings.HasSuffix(normalizedKey, minorKeySuffix) {
			return value
		}
		cents, err := value.Int64()
		if err != nil {
			return value
		}
		return domain.FormatCents(cents)
	case string:
		if location == nil || !strings.HasSuffix(normalizedKey, utcKeySuffix) {
			return value
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			parsed, err := time.Parse(layout, value)
			if err == nil {
				return parsed.In(location).Format(time.RFC3339Nano)
			}
		}
		return value
	default:
		return node
	}
}
