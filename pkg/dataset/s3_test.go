package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper serves GetObject from memory, keyed by "<bucket>/<key>".
type mockRoundTripper struct {
	objects map[string][]byte
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	key := strings.TrimPrefix(req.URL.Path, "/")
	if req.Method != http.MethodGet {
		return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	body, ok := m.objects[key]
	if !ok {
		errBody := "<?xml version=\"1.0\"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>"
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(errBody)),
			Header:     http.Header{"Content-Type": {"application/xml"}},
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header: http.Header{
			"Content-Length": {fmt.Sprintf("%d", len(body))},
			"Content-Type":   {"text/csv"},
		},
	}, nil
}

func newMockS3Client(t *testing.T, objects map[string][]byte) *s3.Client {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: &mockRoundTripper{objects: objects}}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
}

func TestS3Source(t *testing.T) {
	client := newMockS3Client(t, map[string][]byte{
		"materials-bucket/v1/materials.csv": []byte("id,name\n1,Test Alloy\n"),
	})

	t.Run("reads under the prefix", func(t *testing.T) {
		src := NewS3SourceFromClient(client, "materials-bucket", "v1")
		assert.Equal(t, "id,name\n1,Test Alloy\n", readAll(t, src, MaterialsFile))
		assert.Equal(t, "s3://materials-bucket/v1", src.String())
	})

	t.Run("missing key", func(t *testing.T) {
		src := NewS3SourceFromClient(client, "materials-bucket", "v1")
		_, err := src.Open(context.Background(), CurvesFile)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("no prefix", func(t *testing.T) {
		src := NewS3SourceFromClient(client, "materials-bucket", "")
		_, err := src.Open(context.Background(), MaterialsFile)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestNewS3SourceRequiresBucket(t *testing.T) {
	_, err := NewS3Source(context.Background(), S3Config{})
	assert.Error(t, err)
}
