package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
)

// ExtractImageMetadata reads pixel dimensions and, for JPEG files, a few
// EXIF tags from an in-memory image. Failures produce a partial map, never
// an error: metadata is advisory and an unreadable file is still stored.
func ExtractImageMetadata(data []byte) map[string]interface{} {
	meta := make(map[string]interface{})

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		meta["width"] = cfg.Width
		meta["height"] = cfg.Height
		meta["format"] = format
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return meta
	}

	if tag, err := x.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			meta["cameraModel"] = model
		}
	}
	if dt, err := x.DateTime(); err == nil {
		meta["takenAt"] = dt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if orientation, err := tag.Int(0); err == nil {
			meta["orientation"] = orientation
		}
	}

	return meta
}
