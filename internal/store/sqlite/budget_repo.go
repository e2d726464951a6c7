package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo {
	return &BudgetRepo{db: db}
}

const budgetColumns = `id, name, total_amount_minor, period, start_date, end_date, alert_threshold, auto_allocate, created_at_utc, updated_at_utc`

func (r *BudgetRepo) Create(ctx context.Context, input domain.BudgetInput) (domain.Budget, error) {
	tx, err := r.beginTx(ctx, "create budget")
	if err != nil {
		return domain.Budget{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	nowUTC := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := tx.ExecContext(ctx, `
		INSERT INTO budgets (name, total_amount_minor, period, start_date, end_date, alert_threshold, auto_allocate, created_at_utc, updated_at_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		input.Name,
		input.TotalCents,
		input.Period,
		nullableString(input.StartDate),
		nullableString(input.EndDate),
		thresholdValue(input.AlertThreshold),
		boolToInt(input.AutoAllocate),
		nowUTC,
		nowUTC,
	)
	if err != nil {
		return domain.Budget{}, mapBudgetWriteError("create budget", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Budget{}, fmt.Errorf("create budget read id: %w", err)
	}

	if err := insertCategories(ctx, tx, id, input.Categories); err != nil {
		return domain.Budget{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Budget{}, fmt.Errorf("create budget commit: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *BudgetRepo) GetByID(ctx context.Context, id int64) (domain.Budget, error) {
	if r.db == nil {
		return domain.Budget{}, fmt.Errorf("get budget: db is nil")
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?;`, id)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Budget{}, domain.ErrBudgetNotFound
		}
		return domain.Budget{}, fmt.Errorf("get budget by id: %w", err)
	}

	categories, err := r.listCategories(ctx, []int64{id})
	if err != nil {
		return domain.Budget{}, err
	}
	budget.Categories = categories[id]
	if budget.Categories == nil {
		budget.Categories = []domain.BudgetCategory{}
	}
	return budget, nil
}

func (r *BudgetRepo) List(ctx context.Context) ([]domain.Budget, error) {
	if r.db == nil {
		return nil, fmt.Errorf("list budgets: db is nil")
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budgets ORDER BY id ASC;`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	ids := []int64{}
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("list budgets scan: %w", err)
		}
		budgets = append(budgets, budget)
		ids = append(ids, budget.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets rows: %w", err)
	}

	categories, err := r.listCategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		budgets[i].Categories = categories[budgets[i].ID]
		if budgets[i].Categories == nil {
			budgets[i].Categories = []domain.BudgetCategory{}
		}
	}
	return budgets, nil
}

func (r *BudgetRepo) Update(ctx context.Context, id int64, input domain.BudgetInput) (domain.Budget, error) {
	tx, err := r.beginTx(ctx, "update budget")
	if err != nil {
		return domain.Budget{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	nowUTC := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := tx.ExecContext(ctx, `
		UPDATE budgets
		SET name = ?, total_amount_minor = ?, period = ?, start_date = ?, end_date = ?,
			alert_threshold = ?, auto_allocate = ?, updated_at_utc = ?
		WHERE id = ?;`,
		input.Name,
		input.TotalCents,
		input.Period,
		nullableString(input.StartDate),
		nullableString(input.EndDate),
		thresholdValue(input.AlertThreshold),
		boolToInt(input.AutoAllocate),
		nowUTC,
		id,
	)
	if err != nil {
		return domain.Budget{}, mapBudgetWriteError("update budget", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Budget{}, fmt.Errorf("update budget rows: %w", err)
	}
	if rowsAffected == 0 {
		return domain.Budget{}, domain.ErrBudgetNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM budget_categories WHERE budget_id = ?;`, id); err != nil {
		return domain.Budget{}, fmt.Errorf("update budget clear categories: %w", err)
	}
	if err := insertCategories(ctx, tx, id, input.Categories); err != nil {
		return domain.Budget{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Budget{}, fmt.Errorf("update budget commit: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *BudgetRepo) Delete(ctx context.Context, id int64) (domain.BudgetDeleteResult, error) {
	if r.db == nil {
		return domain.BudgetDeleteResult{}, fmt.Errorf("delete budget: db is nil")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?;`, id)
	if err != nil {
		return domain.BudgetDeleteResult{}, fmt.Errorf("delete budget: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.BudgetDeleteResult{}, fmt.Errorf("delete budget rows: %w", err)
	}
	if rowsAffected == 0 {
		return domain.BudgetDeleteResult{}, domain.ErrBudgetNotFound
	}

	return domain.BudgetDeleteResult{
		BudgetID:     id,
		DeletedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

func (r *BudgetRepo) beginTx(ctx context.Context, operation string) (*sql.Tx, error) {
	if r.db == nil {
		return nil, fmt.Errorf("%s: db is nil", operation)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s begin tx: %w", operation, err)
	}
	return tx, nil
}

func (r *BudgetRepo) listCategories(ctx context.Context, budgetIDs []int64) (map[int64][]domain.BudgetCategory, error) {
	out := make(map[int64][]domain.BudgetCategory, len(budgetIDs))
	if len(budgetIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(budgetIDs)), ",")
	args := make([]any, 0, len(budgetIDs))
	for _, id := range budgetIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT budget_id, name, amount_minor, percentage
		FROM budget_categories
		WHERE budget_id IN (`+placeholders+`)
		ORDER BY budget_id ASC, position ASC;`, args...)
	if err != nil {
		return nil, fmt.Errorf("list budget categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			budgetID      int64
			category      domain.BudgetCategory
			percentageRaw string
		)
		if err := rows.Scan(&budgetID, &category.Name, &category.AmountCents, &percentageRaw); err != nil {
			return nil, fmt.Errorf("list budget categories scan: %w", err)
		}
		pct, err := decimal.NewFromString(percentageRaw)
		if err != nil {
			return nil, fmt.Errorf("list budget categories parse percentage %q: %w", percentageRaw, err)
		}
		category.Percentage = pct
		out[budgetID] = append(out[budgetID], category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budget categories rows: %w", err)
	}
	return out, nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, budgetID int64, categories []domain.BudgetCategory) error {
	for position, category := range categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO budget_categories (budget_id, position, name, amount_minor, percentage)
			VALUES (?, ?, ?, ?, ?);`,
			budgetID,
			position,
			category.Name,
			category.AmountCents,
			category.Percentage.String(),
		); err != nil {
			if isUniqueViolation(err) {
				return domain.NewValidationError("categories.name", domain.ErrCategoryNameConflict)
			}
			return fmt.Errorf("insert budget category %q: %w", category.Name, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (domain.Budget, error) {
	var (
		budget       domain.Budget
		period       string
		startDate    sql.NullString
		endDate      sql.NullString
		autoAllocate int64
	)
	if err := row.Scan(
		&budget.ID,
		&budget.Name,
		&budget.TotalCents,
		&period,
		&startDate,
		&endDate,
		&budget.AlertThreshold,
		&autoAllocate,
		&budget.CreatedAtUTC,
		&budget.UpdatedAtUTC,
	); err != nil {
		return domain.Budget{}, err
	}
	budget.Period = domain.PeriodKind(period)
	budget.StartDate = startDate.String
	budget.EndDate = endDate.String
	budget.AutoAllocate = autoAllocate == 1
	return budget, nil
}

func mapBudgetWriteError(operation string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrBudgetNameConflict
	}
	return fmt.Errorf("%s: %w", operation, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func thresholdValue(threshold *int) int {
	if threshold == nil {
		return domain.DefaultAlertThreshold
	}
	return *threshold
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
