package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/logger"
)

// S3StorageFacade produces time-limited download URLs for book assets
// stored in an S3-compatible bucket. The URL is handed to the caller and
// never persisted or logged.
type S3StorageFacade struct {
	endpoint  string
	region    string
	accessKey string
	secretKey string
	bucket    string
	urlExpiry time.Duration
}

// NewS3StorageFacade creates a new facade for the given bucket.
func NewS3StorageFacade(endpoint, region, accessKey, secretKey, bucket string, urlExpiry time.Duration) *S3StorageFacade {
	return &S3StorageFacade{
		endpoint:  endpoint,
		region:    region,
		accessKey: accessKey,
		secretKey: secretKey,
		bucket:    bucket,
		urlExpiry: urlExpiry,
	}
}

func (f *S3StorageFacade) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(f.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			f.accessKey,
			f.secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if f.endpoint != "" {
			o.BaseEndpoint = aws.String(f.endpoint)
		}
	})

	return s3.NewPresignClient(client), nil
}

// bookObjectKey derives the object key for a book asset from its ID.
func bookObjectKey(bookID uuid.UUID) string {
	return fmt.Sprintf("books/%s", bookID)
}

// PresignBookDownload returns a presigned GET URL for the book's asset,
// valid for the configured expiry window.
func (f *S3StorageFacade) PresignBookDownload(ctx context.Context, bookID uuid.UUID) (string, error) {
	presignClient, err := f.presignClient(ctx)
	if err != nil {
		logger.Log.Errorw("failed to build S3 presign client", "error", err)
		return "", err
	}

	key := bookObjectKey(bookID)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &f.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(f.urlExpiry))
	if err != nil {
		logger.Log.Errorw("failed to presign book download", "book_id", bookID, "error", err)
		return "", err
	}

	return req.URL, nil
}
