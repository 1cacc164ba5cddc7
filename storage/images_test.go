package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroom/api-go/config"
)

type fakePutter struct {
	mu    sync.Mutex
	keys  []string
	fail  map[string]bool // filename substring -> fail
	calls int
}

func (f *fakePutter) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for substr := range f.fail {
		if strings.Contains(*input.Key, substr) {
			return nil, errors.New("storage unavailable")
		}
	}
	f.keys = append(f.keys, *input.Key)
	return &s3.PutObjectOutput{}, nil
}

func testStore(putter objectPutter) *ImageStore {
	return &ImageStore{
		client: putter,
		cfg: &config.StorageConfig{
			BucketName: "news-images",
			PublicURL:  "https://cdn.example.com",
		},
	}
}

// buildFileHeaders round-trips files through a real multipart body so the
// headers behave exactly like gin's parsed form files.
func buildFileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, contentType := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(part, "fake image bytes")
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["images"]
}

func TestUploadAll(t *testing.T) {
	putter := &fakePutter{}
	store := testStore(putter)

	headers := buildFileHeaders(t, map[string]string{
		"one.jpg": "image/jpeg",
		"two.png": "image/png",
	})

	urls, err := store.UploadAll(context.Background(), headers)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, url := range urls {
		assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/news/"), url)
	}
	assert.Equal(t, 2, putter.calls)
}

func TestUploadAllFailsWholeBatch(t *testing.T) {
	putter := &fakePutter{fail: map[string]bool{".png": true}}
	store := testStore(putter)

	headers := buildFileHeaders(t, map[string]string{
		"one.jpg": "image/jpeg",
		"two.png": "image/png",
	})

	urls, err := store.UploadAll(context.Background(), headers)
	assert.Error(t, err)
	assert.Nil(t, urls, "partial image lists must not escape")
}

func TestUploadAllRejectsEmptyBatch(t *testing.T) {
	store := testStore(&fakePutter{})

	_, err := store.UploadAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestUploadAllRejectsBadContentType(t *testing.T) {
	store := testStore(&fakePutter{})

	headers := buildFileHeaders(t, map[string]string{
		"script.svg": "image/svg+xml",
	})

	_, err := store.UploadAll(context.Background(), headers)
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestValidateBatchLimits(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"} {
		files[name] = "image/jpeg"
	}
	headers := buildFileHeaders(t, files)
	require.Len(t, headers, 6)

	err := validateBatch(headers)
	assert.ErrorIs(t, err, ErrInvalidUpload)

	assert.NoError(t, validateBatch(headers[:5]))
}

func TestGenerateImageKeyKeepsExtension(t *testing.T) {
	key := generateImageKey("photo.webp")
	assert.True(t, strings.HasPrefix(key, "news/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
}
