// Package archive keeps a copy of every promise record removed by a reframe.
// Archiving happens after the replacing transaction commits and never
// affects its outcome.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/google/uuid"
)

// Record is one archived replacement.
type Record struct {
	Replaced      models.Promise `json:"replaced"`
	ReplacementID int64          `json:"replacement_id"`
	ArchivedAt    int64          `json:"archived_at"`
}

// Archiver stores Records.
type Archiver interface {
	Archive(ctx context.Context, rec Record) (key string, err error)
}

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Prefix       string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Archiver writes each Record as a JSON object.
type S3Archiver struct {
	bucket string
	prefix string
	client objectPutter
	now    func() time.Time
}

func NewS3Archiver(ctx context.Context, c S3Config) (*S3Archiver, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	prefix := strings.Trim(c.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Archiver{bucket: c.Bucket, prefix: prefix, client: client, now: time.Now}, nil
}

// Key returns the object key for rec.
func (a *S3Archiver) Key(rec Record) string {
	d := a.now().UTC()
	return fmt.Sprintf("%sreframed/%d/%02d/%02d/%d-%s.json", a.prefix, d.Year(), d.Month(), d.Day(), rec.Replaced.ID, uuid.New())
}

func (a *S3Archiver) Archive(ctx context.Context, rec Record) (string, error) {
	if rec.ArchivedAt == 0 {
		rec.ArchivedAt = a.now().Unix()
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	key := a.Key(rec)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

// Nop discards records.
type Nop struct{}

func (Nop) Archive(context.Context, Record) (string, error) { return "", nil }
