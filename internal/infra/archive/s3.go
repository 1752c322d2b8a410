package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"ordermgr/internal/config"
	"ordermgr/internal/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3Client はS3Sinkが使うAPIだけ（テストで差し替える）
type s3Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Sink はS3互換ストレージに書く
type S3Sink struct {
	client s3Client
	bucket string
	prefix string
}

func NewS3Sink(ctx context.Context, prefix string, cfg config.S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive/s3: bucket is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	// MinIO / R2 は静的クレデンシャル
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("archive/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return newS3SinkWithClient(s3.NewFromConfig(awsCfg, clientOpts...), cfg.Bucket, prefix), nil
}

func newS3SinkWithClient(client s3Client, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Sink) Archive(ctx context.Context, rec model.OrderArchive) (string, error) {
	b, err := encode(rec)
	if err != nil {
		return "", err
	}

	key := objectKey(s.prefix, rec.OrderID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: archive/s3: put %s: %v", ErrWrite, key, err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

func (s *S3Sink) Fetch(ctx context.Context, orderID int64) (model.OrderArchive, error) {
	key := objectKey(s.prefix, orderID)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return model.OrderArchive{}, ErrNotFound
		}
		return model.OrderArchive{}, fmt.Errorf("archive/s3: get %s: %w", key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return model.OrderArchive{}, fmt.Errorf("archive/s3: read %s: %w", key, err)
	}
	return decode(orderID, b)
}
