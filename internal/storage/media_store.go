package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore keeps listing photos and videos in a MinIO bucket and hands back
// public URLs for the read model.
type MediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type MediaStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

func NewMediaStore(ctx context.Context, cfg MediaStoreConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MediaStore{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}, nil
}

// Upload stores the object under listings/<listingID>/ with a random name so
// re-uploads of the same filename never clobber each other.
func (s *MediaStore) Upload(ctx context.Context, listingID, filename string, body io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("listings/%s/%s%s", listingID, utils.GenerateID("med"), path.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

func (s *MediaStore) Remove(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	objectName := strings.TrimPrefix(url, prefix)
	if objectName == url {
		return fmt.Errorf("media url does not belong to this store")
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// KindFromContentType maps an upload's content type to a media kind. Unknown
// types return the empty string and are rejected upstream.
func KindFromContentType(contentType string) models.MediaKind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaVideo
	default:
		return ""
	}
}
