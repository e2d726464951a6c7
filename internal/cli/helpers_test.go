package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"wardrobe-budget/internal/cli/output"
	"wardrobe-budget/internal/config"
	sqlitestore "wardrobe-budget/internal/store/sqlite"

	"github.com/spf13/cobra"
)

func executeCmdJSON(t *testing.T, db *sql.DB, newCmd func(*RootOptions) *cobra.Command, args []string) map[string]any {
	t.Helper()

	raw := executeCmdRaw(t, db, output.FormatJSON, newCmd, args)
	payload := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal json payload: %v, raw=%s", err, raw)
	}
	return payload
}

func executeCmdRaw(t *testing.T, db *sql.DB, format string, newCmd func(*RootOptions) *cobra.Command, args []string) string {
	t.Helper()

	opts := &RootOptions{Output: format, Timezone: "UTC", db: db, cfg: config.DefaultConfig()}
	cmd := newCmd(opts)

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute %s %v: %v", cmd.Name(), args, err)
	}

	return strings.TrimSpace(buf.String())
}

func mustMap(t *testing.T, value any) map[string]any {
	t.Helper()

	mapped, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", value)
	}
	return mapped
}

func mustSlice(t *testing.T, value any) []any {
	t.Helper()

	items, ok := value.([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", value)
	}
	return items
}

func assertOK(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()

	if ok, _ := payload["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got payload=%v", payload)
	}
	return mustMap(t, payload["data"])
}

func assertErrorCode(t *testing.T, payload map[string]any, code string) map[string]any {
	t.Helper()

	if ok, _ := payload["ok"].(bool); ok {
		t.Fatalf("expected ok=false, got payload=%v", payload)
	}
	errPayload := mustMap(t, payload["error"])
	if errPayload["code"].(string) != code {
		t.Fatalf("expected error code %s, got %v (payload=%v)", code, errPayload["code"], payload)
	}
	return errPayload
}

func newCLITestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "cli_test.db")
	db, err := sqlitestore.OpenAndMigrate(context.Background(), dbPath, "")
	if err != nil {
		t.Fatalf("open and migrate cli test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
