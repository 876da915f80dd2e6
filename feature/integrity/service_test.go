package integrity

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/menu"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubPOS struct {
	reconcile.DownstreamClient
	categories []reconcile.DownstreamCategory
	err        error
}

func (p *stubPOS) ListCategories(context.Context) ([]reconcile.DownstreamCategory, error) {
	return p.categories, p.err
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE menu_items (
		id TEXT PRIMARY KEY, name TEXT, category TEXT, price NUMERIC, description TEXT,
		image_url TEXT, loyverse_id TEXT, status TEXT)`).Error)
	return db
}

func emptyList() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func newTestService(t *testing.T, client *mocks.Client, pos *stubPOS) *Service {
	opts := Options{Bucket: "test-bucket", ReportPrefix: "reports"}
	if client != nil {
		opts.Storage = client
	}
	return NewService([]reconcile.Adapter{menu.NewAdapter()}, setupDB(t), pos, opts, zap.NewNop())
}

func TestService_CheckStructure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyList())
	svc := newTestService(t, client, &stubPOS{})

	missing, err := svc.CheckStructure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/menu"}, missing)
}

func TestService_CheckStructure_BucketMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	svc := newTestService(t, client, &stubPOS{})

	missing, err := svc.CheckStructure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/menu"}, missing)
}

func TestService_StorageDisabled(t *testing.T) {
	svc := newTestService(t, nil, &stubPOS{})

	_, err := svc.CheckStructure(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.FixStructure(context.Background(), []string{"reports/menu"}), ErrStorageDisabled)
}

func TestService_CheckServer(t *testing.T) {
	svc := newTestService(t, nil, &stubPOS{})

	report, err := svc.CheckServer()
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Contains(t, report.Tables, "menu_items")
}

func TestService_CheckPOS(t *testing.T) {
	pos := &stubPOS{categories: []reconcile.DownstreamCategory{{ID: "c1", Name: "Coffee"}}}
	svc := newTestService(t, nil, pos)

	report := svc.CheckPOS(context.Background())
	assert.True(t, report.Reachable)
	assert.Equal(t, []string{"menu"}, report.Families)

	pos.err = errors.New("unauthorized")
	report = svc.CheckPOS(context.Background())
	assert.False(t, report.Reachable)
}
