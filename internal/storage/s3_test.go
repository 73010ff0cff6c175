package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket - бакет в памяти, реализует нужные методы S3 API и загрузчика
type fakeBucket struct {
	s3iface.S3API

	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string
	getErr      error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		objects:     make(map[string][]byte),
		contentType: make(map[string]string),
	}
}

func (f *fakeBucket) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeBucket) HeadObjectWithContext(ctx aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.StringValue(in.Key)]; !ok {
		return nil, awserr.New("NotFound", "Not Found", nil)
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeBucket) Upload(in *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return f.UploadWithContext(context.Background(), in, opts...)
}

func (f *fakeBucket) UploadWithContext(ctx aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.StringValue(in.Key)
	f.objects[key] = data
	f.contentType[key] = aws.StringValue(in.ContentType)
	return &s3manager.UploadOutput{Location: "fake://" + key}, nil
}

func TestS3Storage_SaveAndGet(t *testing.T) {
	bucket := newFakeBucket()
	s := NewS3StorageWithClient(bucket, bucket, "camp", "https://camp.r2.dev")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "reviews.json", strings.NewReader("[]"), "application/json"))
	assert.Equal(t, "application/json", bucket.contentType["reviews.json"])

	rc, err := s.Get(ctx, "reviews.json")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestS3Storage_GetMissing(t *testing.T) {
	bucket := newFakeBucket()
	s := NewS3StorageWithClient(bucket, bucket, "camp", "https://camp.r2.dev")

	_, err := s.Get(context.Background(), "reviews.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
	assert.Contains(t, err.Error(), "https://camp.r2.dev/reviews.json")
}

func TestS3Storage_GetFailure(t *testing.T) {
	bucket := newFakeBucket()
	bucket.getErr = awserr.New("AccessDenied", "Access Denied", nil)
	s := NewS3StorageWithClient(bucket, bucket, "camp", "https://camp.r2.dev")

	_, err := s.Get(context.Background(), "reviews.json")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrObjectNotFound))
}

func TestS3Storage_Exists(t *testing.T) {
	bucket := newFakeBucket()
	s := NewS3StorageWithClient(bucket, bucket, "camp", "s3://camp")
	ctx := context.Background()

	ok, err := s.Exists(ctx, "reviews.json")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "reviews.json", strings.NewReader("[]"), "application/json"))

	ok, err = s.Exists(ctx, "reviews.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3://camp/reviews.json", s.Location("reviews.json"))
}
