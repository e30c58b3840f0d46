package blobstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func fixedClock() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{Region: "us-east-1"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestPut_AWSURL(t *testing.T) {
	p := &fakePutter{}
	s := &S3Store{client: p, opts: Options{Region: "eu-west-1", Bucket: "media"}, now: fixedClock}

	u, err := s.Put(context.Background(), "dir/report 1.pdf", "application/pdf", strings.NewReader("data"))
	require.NoError(t, err)

	key := aws.ToString(p.in.Key)
	assert.True(t, strings.HasPrefix(key, "media/2024/03/09/"), key)
	assert.True(t, strings.HasSuffix(key, "/report 1.pdf"), key)
	assert.Equal(t, "media", aws.ToString(p.in.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(p.in.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(p.in.ContentLength))
	assert.Equal(t, []byte("data"), p.body)

	assert.True(t, strings.HasPrefix(u, "https://media.s3.eu-west-1.amazonaws.com/media/2024/03/09/"), u)
	assert.True(t, strings.HasSuffix(u, "/report%201.pdf"), u)
}

func TestPut_UnseekableBodyIsBuffered(t *testing.T) {
	p := &fakePutter{}
	s := &S3Store{client: p, opts: Options{Bucket: "media", Endpoint: "http://minio:9000/"}, now: fixedClock}

	u, err := s.Put(context.Background(), "a.txt", "", io.NopCloser(strings.NewReader("hello")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), p.body)
	assert.Nil(t, p.in.ContentType)
	assert.True(t, strings.HasPrefix(u, "http://minio:9000/media/media/2024/03/09/"), u)
}

func TestPut_Error(t *testing.T) {
	boom := errors.New("denied")
	s := &S3Store{client: &fakePutter{err: boom}, opts: Options{Bucket: "media"}, now: fixedClock}

	_, err := s.Put(context.Background(), "a.txt", "text/plain", strings.NewReader("x"))
	require.ErrorIs(t, err, boom)
}

func TestPut_AgainstS3CompatibleServer(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	s, err := New(context.Background(), Options{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "media",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)

	u, err := s.Put(context.Background(), "note.txt", "text/plain", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPath, "/media/media/"), gotPath)
	assert.Contains(t, gotBody, "payload")
	assert.Equal(t, srv.URL+gotPath, u)
}
