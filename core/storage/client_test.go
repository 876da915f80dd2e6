package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"catalog-sync/core/storage"
	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "catalog-sync",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "reports").Return(true, nil)

		created, err := storage.EnsureBucket(ctx, m, "reports", "")
		require.NoError(t, err)
		assert.False(t, created)
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "reports", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

		created, err := storage.EnsureBucket(ctx, m, "reports", "us-east-1")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("unreachable"))

		_, err := storage.EnsureBucket(ctx, m, "reports", "")
		assert.ErrorContains(t, err, "unreachable")
	})
}

func TestPutJSONGetJSON(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)

	var written []byte
	m.On("PutObject", mock.Anything, "b", "k.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, storage.PutJSON(ctx, m, "b", "k.json", map[string]int{"created": 2}))
	assert.JSONEq(t, `{"created": 2}`, string(written))

	m.On("GetObject", mock.Anything, "b", "k.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(written)), nil)

	var out map[string]int
	require.NoError(t, storage.GetJSON(ctx, m, "b", "k.json", &out))
	assert.Equal(t, 2, out["created"])
}

func TestListKeys(t *testing.T) {
	m := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "reports/menu/a.json"}
	ch <- minio.ObjectInfo{Key: "reports/menu/b.json"}
	close(ch)
	m.On("ListObjects", mock.Anything, "b", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(context.Background(), m, "b", "reports/menu/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/menu/a.json", "reports/menu/b.json"}, keys)
}
