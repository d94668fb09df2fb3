package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// docSuffix is the object key suffix for encoded documents.
const docSuffix = ".doc"

// S3Source pulls encoded documents from an S3 bucket. Object keys look
// like <prefix><name>.doc and hold protocol.EncodeDocument payloads.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := server.NewS3Source(s3.NewFromConfig(cfg), "my-bucket", "documents/")
//	n, err := src.LoadAll(ctx, store)
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// NewS3Source creates a source reading from bucket under prefix.
func NewS3Source(client *s3.Client, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: slog.Default().With("component", "s3source"),
	}
}

// Load fetches one document payload by name.
func (s *S3Source) Load(ctx context.Context, name string) ([]byte, error) {
	key := s.prefix + name + docSuffix
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("server: fetch s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// LoadAll lists every document under the prefix and publishes each into
// store. Objects that fail to fetch or decode are logged and skipped.
// Returns the number of documents published.
func (s *S3Source) LoadAll(ctx context.Context, store *Store) (int, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	published := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return published, fmt.Errorf("server: list s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, docSuffix) {
				continue
			}
			name := strings.TrimSuffix(path.Base(key), docSuffix)
			payload, err := s.Load(ctx, name)
			if err != nil {
				s.logger.Warn("skipping document", "key", key, "error", err)
				continue
			}
			if _, err := store.PublishEncoded(name, payload); err != nil {
				s.logger.Warn("skipping undecodable document", "key", key, "error", err)
				continue
			}
			published++
		}
	}
	return published, nil
}
