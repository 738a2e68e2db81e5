package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"modtok/internal/shared/kinds"
	"modtok/platform/apperr"
)

const slotOrderNotFoundMessage = "slot order not found"

const slotOrderColumns = `id, slot_type, content_type, content_id, start_date, end_date, rotation_order, is_active, created_at, updated_at`

// Repo implements the slot ledger repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new slots repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateSlotOrder inserts a slot order.
func (r *Repo) CreateSlotOrder(ctx context.Context, params CreateSlotOrderParams) (SlotOrder, error) {
	query := `
		INSERT INTO slot_orders (slot_type, content_type, content_id, start_date, end_date, rotation_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + slotOrderColumns

	row := r.pool.QueryRow(ctx, query,
		params.SlotType, params.ContentType, params.ContentID,
		params.StartDate, params.EndDate, params.RotationOrder, params.IsActive,
	)
	order, err := scanSlotOrder(row)
	if err != nil {
		return SlotOrder{}, fmt.Errorf("create slot order: %w", err)
	}
	return order, nil
}

// UpdateSlotOrder updates mutable fields of a slot order.
func (r *Repo) UpdateSlotOrder(ctx context.Context, params UpdateSlotOrderParams) (SlotOrder, error) {
	query := `
		UPDATE slot_orders
		SET start_date = COALESCE($2, start_date),
			end_date = COALESCE($3, end_date),
			rotation_order = COALESCE($4, rotation_order),
			is_active = COALESCE($5, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + slotOrderColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.StartDate, params.EndDate, params.RotationOrder, params.IsActive,
	)
	order, err := scanSlotOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SlotOrder{}, apperr.NotFound(slotOrderNotFoundMessage)
		}
		return SlotOrder{}, fmt.Errorf("update slot order: %w", err)
	}
	return order, nil
}

// GetSlotOrderByID retrieves one slot order.
func (r *Repo) GetSlotOrderByID(ctx context.Context, id uuid.UUID) (SlotOrder, error) {
	query := `SELECT ` + slotOrderColumns + ` FROM slot_orders WHERE id = $1`

	order, err := scanSlotOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SlotOrder{}, apperr.NotFound(slotOrderNotFoundMessage)
		}
		return SlotOrder{}, fmt.Errorf("get slot order: %w", err)
	}
	return order, nil
}

// ListSlotOrders lists the ledger for the admin surface.
func (r *Repo) ListSlotOrders(ctx context.Context, params ListSlotOrdersParams) ([]SlotOrder, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.SlotType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("slot_type = $%d", argIdx))
		args = append(args, *params.SlotType)
		argIdx++
	}
	if !params.IncludeInactive {
		whereClauses = append(whereClauses, "is_active = TRUE")
	}
	if params.ActiveOn != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("start_date <= $%d AND end_date >= $%d", argIdx, argIdx))
		args = append(args, *params.ActiveOn)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM slot_orders WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count slot orders: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM slot_orders
		WHERE %s
		ORDER BY rotation_order ASC, created_at ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, slotOrderColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list slot orders: %w", err)
	}
	defer rows.Close()

	items, err := collectSlotOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListActiveSlotOrders returns active, in-range orders for display resolution.
func (r *Repo) ListActiveSlotOrders(ctx context.Context, slotType *kinds.Tier, asOf time.Time) ([]SlotOrder, error) {
	args := []interface{}{asOf}
	query := `
		SELECT ` + slotOrderColumns + `
		FROM slot_orders
		WHERE is_active = TRUE AND start_date <= $1 AND end_date >= $1`
	if slotType != nil {
		query += ` AND slot_type = $2`
		args = append(args, *slotType)
	}
	query += ` ORDER BY rotation_order ASC, created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active slot orders: %w", err)
	}
	defer rows.Close()

	return collectSlotOrders(rows)
}

// ListActiveSlotOrdersForEntities returns active in-range orders bound to the
// given entities.
func (r *Repo) ListActiveSlotOrdersForEntities(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID, asOf time.Time) ([]SlotOrder, error) {
	if len(ids) == 0 {
		return []SlotOrder{}, nil
	}

	query := `
		SELECT ` + slotOrderColumns + `
		FROM slot_orders
		WHERE is_active = TRUE
			AND start_date <= $1 AND end_date >= $1
			AND content_type = $2
			AND content_id = ANY($3)
		ORDER BY rotation_order ASC, created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, asOf, entityType, ids)
	if err != nil {
		return nil, fmt.Errorf("list active slot orders for entities: %w", err)
	}
	defer rows.Close()

	return collectSlotOrders(rows)
}

// ListSlotOrdersEnding returns active orders ending within [from, to].
func (r *Repo) ListSlotOrdersEnding(ctx context.Context, from, to time.Time) ([]SlotOrder, error) {
	query := `
		SELECT ` + slotOrderColumns + `
		FROM slot_orders
		WHERE is_active = TRUE AND end_date >= $1 AND end_date <= $2
		ORDER BY end_date ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slot orders ending: %w", err)
	}
	defer rows.Close()

	return collectSlotOrders(rows)
}

// GetCapacity returns the capacity row for a slot type, nil when absent.
func (r *Repo) GetCapacity(ctx context.Context, slotType kinds.Tier) (*SlotCapacity, error) {
	query := `SELECT slot_type, visible_count, updated_at FROM slot_capacities WHERE slot_type = $1`

	var capacity SlotCapacity
	if err := r.pool.QueryRow(ctx, query, slotType).Scan(
		&capacity.SlotType, &capacity.VisibleCount, &capacity.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot capacity: %w", err)
	}
	return &capacity, nil
}

// UpsertCapacity creates or updates the capacity row for a slot type.
func (r *Repo) UpsertCapacity(ctx context.Context, slotType kinds.Tier, visibleCount int) (SlotCapacity, error) {
	query := `
		INSERT INTO slot_capacities (slot_type, visible_count)
		VALUES ($1, $2)
		ON CONFLICT (slot_type) DO UPDATE SET visible_count = EXCLUDED.visible_count, updated_at = now()
		RETURNING slot_type, visible_count, updated_at`

	var capacity SlotCapacity
	if err := r.pool.QueryRow(ctx, query, slotType, visibleCount).Scan(
		&capacity.SlotType, &capacity.VisibleCount, &capacity.UpdatedAt,
	); err != nil {
		return SlotCapacity{}, fmt.Errorf("upsert slot capacity: %w", err)
	}
	return capacity, nil
}

// ListCapacities returns all configured capacity rows.
func (r *Repo) ListCapacities(ctx context.Context) ([]SlotCapacity, error) {
	query := `SELECT slot_type, visible_count, updated_at FROM slot_capacities ORDER BY slot_type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slot capacities: %w", err)
	}
	defer rows.Close()

	items := make([]SlotCapacity, 0)
	for rows.Next() {
		var capacity SlotCapacity
		if err := rows.Scan(&capacity.SlotType, &capacity.VisibleCount, &capacity.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot capacity: %w", err)
		}
		items = append(items, capacity)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate slot capacities: %w", rows.Err())
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlotOrder(row rowScanner) (SlotOrder, error) {
	var order SlotOrder
	err := row.Scan(
		&order.ID, &order.SlotType, &order.ContentType, &order.ContentID,
		&order.StartDate, &order.EndDate, &order.RotationOrder, &order.IsActive,
		&order.CreatedAt, &order.UpdatedAt,
	)
	return order, err
}

func collectSlotOrders(rows pgx.Rows) ([]SlotOrder, error) {
	items := make([]SlotOrder, 0)
	for rows.Next() {
		order, err := scanSlotOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot order: %w", err)
		}
		items = append(items, order)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate slot orders: %w", rows.Err())
	}
	return items, nil
}
