package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultArchiveBatch = 1000

// ObjectPutter is the part of the S3 client the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config describes the archive bucket. Empty credentials fall back to the
// default AWS credential chain.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds an S3 client. A custom endpoint switches to path-style
// addressing for MinIO and friends.
func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ArchiveService copies new usage records to object storage as JSON Lines.
type ArchiveService struct {
	Store     store.Store
	Client    ObjectPutter
	Bucket    string
	Prefix    string
	BatchSize int

	// Now defaults to time.Now.
	Now func() time.Time
}

// archivedRecord is the JSON Lines shape of one usage record.
type archivedRecord struct {
	ID        string             `json:"id"`
	ProjectID string             `json:"project_id"`
	HWSet     string             `json:"hw_set"`
	Username  string             `json:"username"`
	Action    domain.UsageAction `json:"action"`
	Qty       int                `json:"qty"`
	Timestamp time.Time          `json:"timestamp"`
}

// Archive uploads every record not yet archived, one object per batch, and
// marks each batch archived once its upload succeeds. A failed mark leaves
// the batch to be uploaded again on the next run. It returns the number of
// records written.
func (s *ArchiveService) Archive(ctx context.Context) (int, error) {
	log := slogx.FromContext(ctx)
	batch := s.BatchSize
	if batch <= 0 {
		batch = defaultArchiveBatch
	}

	total := 0
	for {
		records, err := s.Store.Usage().ListUnarchived(ctx, batch)
		if err != nil {
			return total, fmt.Errorf("list usage: %w", err)
		}
		if len(records) == 0 {
			break
		}

		last := records[len(records)-1]
		key := s.objectKey(last)
		if err := s.upload(ctx, key, records); err != nil {
			return total, err
		}

		ids := make([]string, len(records))
		for i, r := range records {
			ids[i] = r.ID
		}
		if err := s.Store.Usage().MarkArchived(ctx, ids, s.now()); err != nil {
			return total, fmt.Errorf("mark usage archived: %w", err)
		}

		total += len(records)
		log.Info("usage batch archived", "bucket", s.Bucket, "key", key, "records", len(records))

		if len(records) < batch {
			break
		}
	}
	return total, nil
}

func (s *ArchiveService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ArchiveService) objectKey(last domain.UsageRecord) string {
	ts := last.Timestamp.UTC()
	return path.Join(s.Prefix, ts.Format("2006"), ts.Format("01"), ts.Format("02"), last.ID+".jsonl")
}

func (s *ArchiveService) upload(ctx context.Context, key string, records []domain.UsageRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range records {
		if err := enc.Encode(archivedRecord{
			ID:        r.ID,
			ProjectID: r.ProjectID,
			HWSet:     r.HWSetName,
			Username:  r.Username,
			Action:    r.Action,
			Qty:       r.Qty,
			Timestamp: r.Timestamp.UTC(),
		}); err != nil {
			return fmt.Errorf("encode usage record: %w", err)
		}
	}

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
