package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Archiver stores the output of one refresh run.
type Archiver interface {
	Archive(ctx context.Context, sec sector.Sector, items []models.NewsItem) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// S3Archiver writes JSON documents to an S3 compatible bucket such as R2.
type S3Archiver struct {
	client putObjectAPI
	bucket string
	now    func() time.Time
	log    zerolog.Logger
}

func NewS3Archiver(ctx context.Context, cfg Config) (*S3Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})
	return newS3Archiver(client, cfg.Bucket), nil
}

func newS3Archiver(client putObjectAPI, bucket string) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		now:    time.Now,
		log:    logger.Component("archive"),
	}
}

// ObjectKey is news/{sector}/YYYY/MM/DD/{unix}.json in UTC.
func ObjectKey(sec sector.Sector, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("news/%s/%s/%d.json", sec, at.Format("2006/01/02"), at.Unix())
}

func (a *S3Archiver) Archive(ctx context.Context, sec sector.Sector, items []models.NewsItem) (string, error) {
	if items == nil {
		items = []models.NewsItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode archive: %w", err)
	}

	key := ObjectKey(sec, a.now())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	a.log.Info().
		Str("bucket", a.bucket).
		Str("key", key).
		Int("items", len(items)).
		Msg("Archived refresh run")
	return key, nil
}
