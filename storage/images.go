package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/newsroom/api-go/config"
)

const (
	MaxImagesPerUpload = 5
	MaxImageSize       = 5 * 1024 * 1024 // bytes
)

// ErrInvalidUpload marks client-side upload mistakes (too many files, bad
// type, oversized) as opposed to hosting failures.
var ErrInvalidUpload = errors.New("invalid upload")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Uploader pushes a batch of multipart image files to the external image
// host and returns their public URLs, in input order.
type Uploader interface {
	UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ImageStore struct {
	client objectPutter
	cfg    *config.StorageConfig
}

func NewImageStore(cfg *config.StorageConfig) *ImageStore {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &ImageStore{client: client, cfg: cfg}
}

// UploadAll validates the batch, uploads every file concurrently and joins
// the results. Any failure fails the whole batch so a post never ends up
// with a partial image list.
func (is *ImageStore) UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if err := validateBatch(files); err != nil {
		return nil, err
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, header := range files {
		wg.Add(1)
		go func(i int, header *multipart.FileHeader) {
			defer wg.Done()
			urls[i], errs[i] = is.uploadOne(ctx, header)
		}(i, header)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return urls, nil
}

func (is *ImageStore) uploadOne(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", header.Filename, err)
	}
	defer file.Close()

	key := generateImageKey(header.Filename)

	_, err = is.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(is.cfg.BucketName),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(header.Header.Get("Content-Type")),
		ContentLength: aws.Int64(header.Size),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", header.Filename, err)
	}

	return fmt.Sprintf("%s/%s", is.cfg.PublicURL, key), nil
}

func validateBatch(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: no images provided", ErrInvalidUpload)
	}
	if len(files) > MaxImagesPerUpload {
		return fmt.Errorf("%w: maximum %d images per upload", ErrInvalidUpload, MaxImagesPerUpload)
	}
	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			return fmt.Errorf("%w: only JPG, PNG or WebP images are allowed", ErrInvalidUpload)
		}
		if header.Size > MaxImageSize {
			return fmt.Errorf("%w: %s exceeds the %dMB limit", ErrInvalidUpload, header.Filename, MaxImageSize/(1024*1024))
		}
	}
	return nil
}

func generateImageKey(fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("news/%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
}
