package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// deleteBatchSize is the DeleteObjects per-request key limit.
const deleteBatchSize = 1000

// s3API is the subset of *s3.Client the sink calls.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// s3Sink keeps every sink path as an object key in a single bucket.
// Directories are implicit key prefixes.
type s3Sink struct {
	client s3API
	bucket string
	logger *logger.Logger
}

// NewS3Sink builds a [Sink] backed by an S3-compatible bucket (AWS, MinIO).
func NewS3Sink(ctx context.Context, cfg config.S3, log *logger.Logger) (Sink, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		log.Err(err).Str("func", "NewS3Sink").Msg("error loading aws config")
		return nil, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Sink(client, cfg.Bucket, log), nil
}

func newS3Sink(client s3API, bucket string, log *logger.Logger) *s3Sink {
	return &s3Sink{client: client, bucket: bucket, logger: log}
}

// EnsureDir is a no-op: prefixes exist as soon as a key uses them.
func (s *s3Sink) EnsureDir(_ context.Context, dir string) error {
	_, err := cleanPath(dir)
	return err
}

func (s *s3Sink) Write(ctx context.Context, name string, r io.Reader) error {
	key, err := cleanPath(name)
	if err != nil {
		return err
	}

	// PutObject needs a seekable body to compute the payload hash
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3Sink.Write").Str("key", key).Msg("error putting object")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	return nil
}

func (s *s3Sink) Remove(ctx context.Context, name string) error {
	key, err := cleanPath(name)
	if err != nil {
		return err
	}

	// S3 DeleteObject succeeds for missing keys
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3Sink.Remove").Str("key", key).Msg("error deleting object")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	return nil
}

func (s *s3Sink) RemoveAll(ctx context.Context, dir string) error {
	prefix, err := dirPrefix(dir)
	if err != nil {
		return err
	}

	keys, err := s.listKeys(ctx, prefix, false)
	if err != nil {
		return err
	}

	for batch := range slices.Chunk(keys, deleteBatchSize) {
		objects := make([]types.ObjectIdentifier, 0, len(batch))
		for _, k := range batch {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(k)})
		}

		_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*s3Sink.RemoveAll").Str("prefix", prefix).Msg("error deleting objects")
			return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}
	}

	return nil
}

func (s *s3Sink) List(ctx context.Context, dir string) ([]string, error) {
	prefix, err := dirPrefix(dir)
	if err != nil {
		return nil, err
	}

	keys, err := s.listKeys(ctx, prefix, true)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if name := strings.TrimPrefix(k, prefix); name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names, nil
}

// listKeys pages through every key under prefix. With shallow set only keys
// directly under prefix are returned.
func (s *s3Sink) listKeys(ctx context.Context, prefix string, shallow bool) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if shallow {
		input.Delimiter = aws.String("/")
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*s3Sink.listKeys").Str("prefix", prefix).Msg("error listing objects")
			return nil, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

func dirPrefix(dir string) (string, error) {
	cleaned, err := cleanPath(dir)
	if err != nil {
		return "", err
	}
	if cleaned == "." {
		return "", ErrInvalidPath
	}
	return cleaned + "/", nil
}
