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

const entityNotFoundMessage = "entity not found"

const entityColumns = `id, entity_type, slug, name, description, region, comuna, phone, email, website,
	price_from_clp, tier, has_quality_images, has_complete_info, editor_approved_for_premium,
	status, attributes, created_at, updated_at`

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateEntity inserts a catalog entity.
func (r *Repo) CreateEntity(ctx context.Context, params CreateEntityParams) (Entity, error) {
	query := `
		INSERT INTO catalog_entities (
			entity_type, slug, name, description, region, comuna, phone, email, website,
			price_from_clp, tier, status, attributes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + entityColumns

	row := r.pool.QueryRow(ctx, query,
		params.Type, params.Slug, params.Name, params.Description, params.Region, params.Comuna,
		params.Phone, params.Email, params.Website, params.PriceFromCLP, params.Tier,
		params.Status, params.Attributes,
	)
	entity, err := scanEntity(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Entity{}, apperr.Conflict("slug already in use")
		}
		return Entity{}, fmt.Errorf("create entity: %w", err)
	}
	return entity, nil
}

// UpdateEntity applies a partial update.
func (r *Repo) UpdateEntity(ctx context.Context, params UpdateEntityParams) (Entity, error) {
	query := `
		UPDATE catalog_entities
		SET slug = COALESCE($3, slug),
			name = COALESCE($4, name),
			description = COALESCE($5, description),
			region = COALESCE($6, region),
			comuna = COALESCE($7, comuna),
			phone = COALESCE($8, phone),
			email = COALESCE($9, email),
			website = COALESCE($10, website),
			price_from_clp = COALESCE($11, price_from_clp),
			tier = COALESCE($12, tier),
			status = COALESCE($13, status),
			attributes = COALESCE($14, attributes),
			updated_at = now()
		WHERE id = $1 AND entity_type = $2
		RETURNING ` + entityColumns

	var attributes interface{}
	if params.Attributes != nil {
		attributes = params.Attributes
	}

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Type, params.Slug, params.Name, params.Description, params.Region,
		params.Comuna, params.Phone, params.Email, params.Website, params.PriceFromCLP,
		params.Tier, params.Status, attributes,
	)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entity{}, apperr.NotFound(entityNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Entity{}, apperr.Conflict("slug already in use")
		}
		return Entity{}, fmt.Errorf("update entity: %w", err)
	}
	return entity, nil
}

// DeleteEntity removes a catalog entity.
func (r *Repo) DeleteEntity(ctx context.Context, entityType kinds.EntityType, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalog_entities WHERE id = $1 AND entity_type = $2`, id, entityType)
	if err != nil {
		return fmt.Errorf("delete entity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(entityNotFoundMessage)
	}
	return nil
}

// GetEntityByID retrieves one entity.
func (r *Repo) GetEntityByID(ctx context.Context, entityType kinds.EntityType, id uuid.UUID) (Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM catalog_entities WHERE id = $1 AND entity_type = $2`

	entity, err := scanEntity(r.pool.QueryRow(ctx, query, id, entityType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entity{}, apperr.NotFound(entityNotFoundMessage)
		}
		return Entity{}, fmt.Errorf("get entity by id: %w", err)
	}
	return entity, nil
}

// GetEntityBySlug retrieves one entity by slug for public pages.
func (r *Repo) GetEntityBySlug(ctx context.Context, entityType kinds.EntityType, slug string, publishedOnly bool) (Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM catalog_entities WHERE slug = $1 AND entity_type = $2`
	if publishedOnly {
		query += ` AND status = 'published'`
	}

	entity, err := scanEntity(r.pool.QueryRow(ctx, query, slug, entityType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entity{}, apperr.NotFound(entityNotFoundMessage)
		}
		return Entity{}, fmt.Errorf("get entity by slug: %w", err)
	}
	return entity, nil
}

// ListEntities lists entities with filters and pagination.
func (r *Repo) ListEntities(ctx context.Context, params ListEntitiesParams) ([]Entity, int, error) {
	whereClauses := []string{"entity_type = $1"}
	args := []interface{}{params.Type}
	argIdx := 2

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Region != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("region = $%d", argIdx))
		args = append(args, params.Region)
		argIdx++
	}
	if params.Tier != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("tier = $%d", argIdx))
		args = append(args, *params.Tier)
		argIdx++
	}
	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}
	if params.PublishedOnly {
		whereClauses = append(whereClauses, "status = 'published'")
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM catalog_entities WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entities: %w", err)
	}

	sortColumn := "name"
	switch params.SortBy {
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	case "tier":
		sortColumn = "tier"
	}
	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog_entities
		WHERE %s
		ORDER BY %s %s, name ASC
		LIMIT $%d OFFSET $%d
	`, entityColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	items := make([]Entity, 0)
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entity: %w", err)
		}
		items = append(items, entity)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate entities: %w", rows.Err())
	}

	return items, total, nil
}

// GetBaselines returns baseline tiers for the ids that exist.
func (r *Repo) GetBaselines(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]Baseline, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]Baseline{}, nil
	}

	query := `SELECT id, tier FROM catalog_entities WHERE entity_type = $1 AND id = ANY($2)`
	rows, err := r.pool.Query(ctx, query, entityType, ids)
	if err != nil {
		return nil, fmt.Errorf("get baselines: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]Baseline, len(ids))
	for rows.Next() {
		var baseline Baseline
		if err := rows.Scan(&baseline.ID, &baseline.Tier); err != nil {
			return nil, fmt.Errorf("scan baseline: %w", err)
		}
		result[baseline.ID] = baseline
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate baselines: %w", rows.Err())
	}
	return result, nil
}

// GetSummaries returns display summaries for published entities.
func (r *Repo) GetSummaries(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]Summary, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]Summary{}, nil
	}

	query := `
		SELECT id, entity_type, slug, name, tier
		FROM catalog_entities
		WHERE entity_type = $1 AND id = ANY($2) AND status = 'published'`
	rows, err := r.pool.Query(ctx, query, entityType, ids)
	if err != nil {
		return nil, fmt.Errorf("get summaries: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]Summary, len(ids))
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(&summary.ID, &summary.Type, &summary.Slug, &summary.Name, &summary.Tier); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		result[summary.ID] = summary
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate summaries: %w", rows.Err())
	}
	return result, nil
}

// ListPublishedRefs returns slug references of all published entities of
// one type, ordered by slug for stable sitemap output.
func (r *Repo) ListPublishedRefs(ctx context.Context, entityType kinds.EntityType) ([]PageRef, error) {
	query := `
		SELECT slug, updated_at
		FROM catalog_entities
		WHERE entity_type = $1 AND status = 'published'
		ORDER BY slug ASC`

	rows, err := r.pool.Query(ctx, query, entityType)
	if err != nil {
		return nil, fmt.Errorf("list published refs: %w", err)
	}
	defer rows.Close()

	refs := make([]PageRef, 0)
	for rows.Next() {
		var ref PageRef
		var updatedAt time.Time
		if err := rows.Scan(&ref.Slug, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan page ref: %w", err)
		}
		ref.UpdatedAt = updatedAt.Format("2006-01-02")
		refs = append(refs, ref)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate page refs: %w", rows.Err())
	}
	return refs, nil
}

// UpdateEditorialFlags applies a partial flag update to one entity.
func (r *Repo) UpdateEditorialFlags(ctx context.Context, entityType kinds.EntityType, id uuid.UUID, flags EditorialFlags) (Entity, error) {
	query := `
		UPDATE catalog_entities
		SET has_quality_images = COALESCE($3, has_quality_images),
			has_complete_info = COALESCE($4, has_complete_info),
			editor_approved_for_premium = COALESCE($5, editor_approved_for_premium),
			updated_at = now()
		WHERE id = $1 AND entity_type = $2
		RETURNING ` + entityColumns

	row := r.pool.QueryRow(ctx, query,
		id, entityType, flags.HasQualityImages, flags.HasCompleteInfo, flags.EditorApprovedForPremium,
	)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entity{}, apperr.NotFound(entityNotFoundMessage)
		}
		return Entity{}, fmt.Errorf("update editorial flags: %w", err)
	}
	return entity, nil
}

// BulkApproveEntities sets all three editorial flags true for the given ids.
func (r *Repo) BulkApproveEntities(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (int, []uuid.UUID, error) {
	if len(ids) == 0 {
		return 0, nil, nil
	}

	query := `
		UPDATE catalog_entities
		SET has_quality_images = TRUE,
			has_complete_info = TRUE,
			editor_approved_for_premium = TRUE,
			updated_at = now()
		WHERE entity_type = $1 AND id = ANY($2)
		RETURNING id`

	rows, err := r.pool.Query(ctx, query, entityType, ids)
	if err != nil {
		return 0, nil, fmt.Errorf("bulk approve entities: %w", err)
	}
	defer rows.Close()

	updated := make(map[uuid.UUID]struct{}, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return 0, nil, fmt.Errorf("scan approved id: %w", err)
		}
		updated[id] = struct{}{}
	}
	if rows.Err() != nil {
		return 0, nil, fmt.Errorf("iterate approved ids: %w", rows.Err())
	}

	failed := make([]uuid.UUID, 0)
	for _, id := range ids {
		if _, ok := updated[id]; !ok {
			failed = append(failed, id)
		}
	}
	return len(updated), failed, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntity(row rowScanner) (Entity, error) {
	var entity Entity
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&entity.ID, &entity.Type, &entity.Slug, &entity.Name, &entity.Description,
		&entity.Region, &entity.Comuna, &entity.Phone, &entity.Email, &entity.Website,
		&entity.PriceFromCLP, &entity.Tier, &entity.HasQualityImages, &entity.HasCompleteInfo,
		&entity.EditorApprovedForPremium, &entity.Status, &entity.Attributes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Entity{}, err
	}
	entity.CreatedAt = createdAt.Format(time.RFC3339)
	entity.UpdatedAt = updatedAt.Format(time.RFC3339)
	return entity, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
