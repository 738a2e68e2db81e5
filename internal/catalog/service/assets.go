package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"modtok/internal/adapters/storage"
	"modtok/internal/catalog/repository"
	"modtok/internal/catalog/transport"
	"modtok/internal/shared/kinds"
	"modtok/platform/apperr"
)

// AssetStore is the subset of the storage adapter the catalog uses.
type AssetStore interface {
	UploadObject(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error)
	PresignDownload(ctx context.Context, bucket, objectKey string) (*storage.PresignedURL, error)
	DeleteObject(ctx context.Context, bucket, objectKey string) error
	ValidateContentType(contentType string) error
	ValidateFileSize(sizeBytes int64) error
}

// AssetBuckets names the buckets entity files land in.
type AssetBuckets interface {
	GetMinioBucketEntityImages() string
	GetMinioBucketEntityDocuments() string
}

// UploadAsset validates and stores a file for an entity, records it, and
// for images extracts pixel and EXIF metadata to help editorial review.
func (s *Service) UploadAsset(ctx context.Context, entityType string, entityID uuid.UUID, fileName, contentType string, data []byte) (*transport.AssetResponse, error) {
	if s.storage == nil {
		return nil, apperr.Internal("file storage is not configured")
	}

	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, apperr.Validation("fileName is required")
	}
	if err := s.storage.ValidateContentType(contentType); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := s.storage.ValidateFileSize(int64(len(data))); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	// The entity must exist before files can be attached to it.
	if _, err := s.repo.GetEntityByID(ctx, kind, entityID); err != nil {
		return nil, err
	}

	assetKind := "document"
	bucket := s.buckets.GetMinioBucketEntityDocuments()
	var metadata map[string]interface{}
	if storage.IsImageContentType(contentType) {
		assetKind = "image"
		bucket = s.buckets.GetMinioBucketEntityImages()
		metadata = storage.ExtractImageMetadata(data)
	}

	folder := fmt.Sprintf("%s/%s", kind, entityID)
	objectKey, err := s.storage.UploadObject(ctx, bucket, folder, fileName, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperr.Store("upload asset", err)
	}

	asset, err := s.repo.CreateAsset(ctx, repository.CreateAssetParams{
		EntityType:  kind,
		EntityID:    entityID,
		Kind:        assetKind,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Metadata:    metadata,
	})
	if err != nil {
		// Orphaned object; best effort cleanup.
		_ = s.storage.DeleteObject(ctx, bucket, objectKey)
		return nil, err
	}

	resp := s.toAssetResponse(ctx, asset, false)
	return &resp, nil
}

// ListAssets returns an entity's assets with presigned download URLs.
func (s *Service) ListAssets(ctx context.Context, entityType string, entityID uuid.UUID) ([]transport.AssetResponse, error) {
	kind, err := kinds.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}

	assets, err := s.repo.ListAssets(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.AssetResponse, 0, len(assets))
	for _, asset := range assets {
		responses = append(responses, s.toAssetResponse(ctx, asset, true))
	}
	return responses, nil
}

// DeleteAsset removes an asset record and its stored object.
func (s *Service) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.GetAssetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAsset(ctx, id); err != nil {
		return err
	}
	if s.storage != nil {
		if err := s.storage.DeleteObject(ctx, asset.Bucket, asset.ObjectKey); err != nil {
			s.log.Error("failed to delete stored object", "objectKey", asset.ObjectKey, "error", err)
		}
	}
	return nil
}

func (s *Service) toAssetResponse(ctx context.Context, asset repository.Asset, withURL bool) transport.AssetResponse {
	resp := transport.AssetResponse{
		ID:          asset.ID,
		Kind:        asset.Kind,
		FileName:    asset.FileName,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		Metadata:    asset.Metadata,
		CreatedAt:   asset.CreatedAt,
	}
	if withURL && s.storage != nil {
		if presigned, err := s.storage.PresignDownload(ctx, asset.Bucket, asset.ObjectKey); err == nil {
			resp.DownloadURL = presigned.URL
		}
	}
	return resp
}
