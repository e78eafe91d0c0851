// Package storage uploads note images to an S3-compatible bucket and
// returns their public URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// Uploader stores an image and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, file models.ImageFile) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

var ErrNotConfigured = errors.New("image storage is not configured")

// Options describe the bucket. PublicURL is the prefix objects are served
// under, e.g. "https://<ref>.supabase.co/storage/v1/object/public".
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

type S3Storage struct {
	opts Options
	now  func() time.Time

	once   sync.Once
	client putObjectAPI
	err    error
}

func NewS3Storage(opts Options) *S3Storage {
	return &S3Storage{opts: opts, now: time.Now}
}

func (s *S3Storage) getClient(ctx context.Context) (putObjectAPI, error) {
	s.once.Do(func() {
		if s.opts.Bucket == "" || s.opts.Endpoint == "" {
			s.err = ErrNotConfigured
			return
		}
		cfg, err := loadDefaultAWSConfig(ctx,
			config.WithRegion(s.opts.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.opts.AccessKey,
				s.opts.SecretKey,
				"",
			)))
		if err != nil {
			s.err = fmt.Errorf("failed to load storage config: %w", err)
			return
		}
		s.client = newS3Client(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s.opts.Endpoint)
			o.UsePathStyle = true
		})
	})
	return s.client, s.err
}

// Upload puts the file under a time-based key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, file models.ImageFile) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := ObjectName(s.now(), file)
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(file.Data),
	}
	if file.ContentType != "" {
		in.ContentType = aws.String(file.ContentType)
	}

	if _, err := client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return PublicURL(s.opts.PublicURL, s.opts.Bucket, key), nil
}

// ObjectName is "<unix millis>.<ext>".
func ObjectName(now time.Time, file models.ImageFile) string {
	return fmt.Sprintf("%d.%s", now.UnixMilli(), file.Ext())
}

func PublicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}
