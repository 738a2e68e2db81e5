package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"modtok/internal/shared/kinds"
	"modtok/platform/apperr"
)

const assetColumns = `id, entity_type, entity_id, kind, bucket, object_key, file_name,
	content_type, size_bytes, metadata, created_at`

// CreateAsset records an uploaded file for an entity.
func (r *Repo) CreateAsset(ctx context.Context, params CreateAssetParams) (Asset, error) {
	query := `
		INSERT INTO entity_assets (
			entity_type, entity_id, kind, bucket, object_key, file_name, content_type, size_bytes, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + assetColumns

	row := r.pool.QueryRow(ctx, query,
		params.EntityType, params.EntityID, params.Kind, params.Bucket, params.ObjectKey,
		params.FileName, params.ContentType, params.SizeBytes, params.Metadata,
	)
	asset, err := scanAsset(row)
	if err != nil {
		return Asset{}, fmt.Errorf("create asset: %w", err)
	}
	return asset, nil
}

// ListAssets returns an entity's assets, newest first.
func (r *Repo) ListAssets(ctx context.Context, entityType kinds.EntityType, entityID uuid.UUID) ([]Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM entity_assets
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate assets: %w", rows.Err())
	}
	return assets, nil
}

// GetAssetByID retrieves one asset record.
func (r *Repo) GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM entity_assets WHERE id = $1`

	asset, err := scanAsset(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Asset{}, apperr.NotFound("asset not found")
		}
		return Asset{}, fmt.Errorf("get asset by id: %w", err)
	}
	return asset, nil
}

// DeleteAsset removes an asset record.
func (r *Repo) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM entity_assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("asset not found")
	}
	return nil
}

func scanAsset(row rowScanner) (Asset, error) {
	var asset Asset
	var createdAt time.Time
	err := row.Scan(
		&asset.ID, &asset.EntityType, &asset.EntityID, &asset.Kind, &asset.Bucket,
		&asset.ObjectKey, &asset.FileName, &asset.ContentType, &asset.SizeBytes,
		&asset.Metadata, &createdAt,
	)
	if err != nil {
		return Asset{}, err
	}
	asset.CreatedAt = createdAt.Format(time.RFC3339)
	return asset, nil
}
