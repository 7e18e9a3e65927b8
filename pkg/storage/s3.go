package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Categories partition stored assets by what references them.
const (
	CategoryUserAvatar     = "users"
	CategoryChannelAvatar  = "channels"
	CategoryCourseAvatar   = "courses"
	CategoryGroupAvatar    = "groups"
	CategoryVideo          = "videos"
	CategoryVideoThumbnail = "thumbnails"
)

// Store is the media storage gateway: it takes binary assets and hands back
// durable references the entities carry around.
type Store interface {
	Store(ctx context.Context, category, filename, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, ref string) error
}

// S3Store is an S3 implementation of Store.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewS3Store builds an S3-backed store from ambient AWS configuration.
func NewS3Store(ctx context.Context, region, bucket string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
	}, nil
}

// Store uploads the asset under category/filename and returns its public URL.
func (s *S3Store) Store(ctx context.Context, category, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s", category, filename)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, url.PathEscape(key)), nil
}

// Remove deletes the asset a reference points at.
func (s *S3Store) Remove(ctx context.Context, ref string) error {
	key, err := s.keyFromRef(ref)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) keyFromRef(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid storage reference %q: %w", ref, err)
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid storage reference %q: %w", ref, err)
	}
	return key, nil
}
