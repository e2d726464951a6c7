package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"wardrobe-budget/internal/domain"
)

// PurchaseRepo is the local wardrobe purchase store.
type PurchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

const purchaseColumns = `id, category_name, amount_minor, purchase_date, item_name, created_at_utc`

func (r *PurchaseRepo) Add(ctx context.Context, record domain.PurchaseRecord) (domain.PurchaseRecord, error) {
	if r.db == nil {
		return domain.PurchaseRecord{}, fmt.Errorf("add purchase: db is nil")
	}

	nowUTC := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (category_name, amount_minor, purchase_date, item_name, created_at_utc)
		VALUES (?, ?, ?, ?, ?);`,
		record.CategoryName,
		record.AmountCents,
		domain.FormatDate(record.PurchaseDate),
		nullableString(record.ItemName),
		nowUTC,
	)
	if err != nil {
		return domain.PurchaseRecord{}, fmt.Errorf("add purchase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.PurchaseRecord{}, fmt.Errorf("add purchase read id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (domain.PurchaseRecord, error) {
	if r.db == nil {
		return domain.PurchaseRecord{}, fmt.Errorf("get purchase: db is nil")
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = ?;`, id)
	record, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PurchaseRecord{}, domain.ErrPurchaseNotFound
		}
		return domain.PurchaseRecord{}, fmt.Errorf("get purchase by id: %w", err)
	}
	return record, nil
}

// List returns purchases ordered by date then id. The window bounds are inclusive.
func (r *PurchaseRepo) List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.PurchaseRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("list purchases: db is nil")
	}

	clauses := []string{}
	args := []any{}
	if filter.CategoryName != "" {
		clauses = append(clauses, "category_name = ? COLLATE NOCASE")
		args = append(args, filter.CategoryName)
	}
	if filter.Window != nil {
		clauses = append(clauses, "purchase_date >= ?", "purchase_date <= ?")
		args = append(args, domain.FormatDate(filter.Window.Start), domain.FormatDate(filter.Window.End))
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY purchase_date ASC, id ASC;`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	records := []domain.PurchaseRecord{}
	for rows.Next() {
		record, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("list purchases scan: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchases rows: %w", err)
	}
	return records, nil
}

func (r *PurchaseRepo) Delete(ctx context.Context, id int64) (domain.PurchaseDeleteResult, error) {
	if r.db == nil {
		return domain.PurchaseDeleteResult{}, fmt.Errorf("delete purchase: db is nil")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?;`, id)
	if err != nil {
		return domain.PurchaseDeleteResult{}, fmt.Errorf("delete purchase: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.PurchaseDeleteResult{}, fmt.Errorf("delete purchase rows: %w", err)
	}
	if rowsAffected == 0 {
		return domain.PurchaseDeleteResult{}, domain.ErrPurchaseNotFound
	}

	return domain.PurchaseDeleteResult{
		PurchaseID:   id,
		DeletedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

func scanPurchase(row rowScanner) (domain.PurchaseRecord, error) {
	var (
		record       domain.PurchaseRecord
		purchaseDate string
		itemName     sql.NullString
	)
	if err := row.Scan(
		&record.ID,
		&record.CategoryName,
		&record.AmountCents,
		&purchaseDate,
		&itemName,
		&record.CreatedAtUTC,
	); err != nil {
		return domain.PurchaseRecord{}, err
	}

	parsed, err := domain.ParseDate(purchaseDate)
	if err != nil {
		return domain.PurchaseRecord{}, fmt.Errorf("parse purchase_date %q: %w", purchaseDate, err)
	}
	record.PurchaseDate = parsed
	record.ItemName = itemName.String
	return record, nil
}
