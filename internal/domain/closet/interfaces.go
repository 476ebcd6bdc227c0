package closet

import (
	"context"
	"io"
	"time"
)

// ImageStore abstracts blob storage for uploaded photos (disk/S3/memory).
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredImage, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// StoredImage captures persisted blob metadata.
type StoredImage struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// Analyzer derives styling metadata from uploaded photos.
type Analyzer interface {
	AnalyzeBody(ctx context.Context, img Upload) (BodyAnalysis, error)
	AnalyzeGarment(ctx context.Context, img Upload) (GarmentAnalysis, error)
}

// AnalysisCache memoizes garment analysis keyed by image content hash.
type AnalysisCache interface {
	GetGarment(ctx context.Context, key string) (GarmentAnalysis, bool, error)
	SaveGarment(ctx context.Context, key string, analysis GarmentAnalysis, ttl time.Duration) error
}
