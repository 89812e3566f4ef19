package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageResolver turns a stored staff image reference into a URL clients can load.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

type PassthroughResolver struct{}

func (PassthroughResolver) Resolve(_ context.Context, ref string) (string, error) {
	return ref, nil
}

type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Expires         time.Duration
}

// S3ImageResolver presigns object keys; absolute URLs are returned as is.
type S3ImageResolver struct {
	bucket    string
	expires   time.Duration
	presigner *s3.PresignClient
}

func NewS3ImageResolver(cfg S3Config) *S3ImageResolver {
	awsCfg := aws.Config{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}

	expires := cfg.Expires
	if expires <= 0 {
		expires = 15 * time.Minute
	}

	return &S3ImageResolver{
		bucket:    cfg.Bucket,
		expires:   expires,
		presigner: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
	}
}

func (r *S3ImageResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" || isAbsoluteURL(ref) {
		return ref, nil
	}

	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(strings.TrimPrefix(ref, "/")),
	}, s3.WithPresignExpires(r.expires))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", ref, err)
	}
	return req.URL, nil
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

var (
	_ ImageResolver = PassthroughResolver{}
	_ ImageResolver = (*S3ImageResolver)(nil)
)
