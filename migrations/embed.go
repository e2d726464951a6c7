// Package migrations bundles the goose SQL migrations for the budgets,
// budget_categories and purchases tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
