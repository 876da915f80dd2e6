package catalogsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"catalog-sync/core/lock"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/menu"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memSource struct {
	mu      sync.Mutex
	records []reconcile.SourceRecord
	calls   int
	block   chan struct{}
}

func (s *memSource) QueryActive(ctx context.Context) ([]reconcile.SourceRecord, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reconcile.SourceRecord(nil), s.records...), nil
}

func (s *memSource) WriteBack(ctx context.Context, id, downstreamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].DownstreamIDHint = downstreamID
		}
	}
	return nil
}

type memPOS struct {
	mu    sync.Mutex
	items []reconcile.DownstreamRecord
	cats  []reconcile.DownstreamCategory
	err   error
}

func (p *memPOS) ListItems(ctx context.Context) ([]reconcile.DownstreamRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return append([]reconcile.DownstreamRecord(nil), p.items...), nil
}

func (p *memPOS) ListCategories(ctx context.Context) ([]reconcile.DownstreamCategory, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]reconcile.DownstreamCategory(nil), p.cats...), nil
}

func (p *memPOS) CreateCategory(ctx context.Context, name string) (reconcile.DownstreamCategory, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := reconcile.DownstreamCategory{ID: "cat-" + name, Name: name}
	p.cats = append(p.cats, c)
	return c, nil
}

func (p *memPOS) CreateItem(ctx context.Context, payload reconcile.DownstreamPayload) (reconcile.DownstreamRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	item := reconcile.DownstreamRecord{
		ID:          "lv-" + payload.Name,
		Name:        payload.Name,
		CategoryID:  payload.CategoryID,
		Description: payload.Description,
		Price:       payload.Variants[0].Price,
	}
	p.items = append(p.items, item)
	return item, nil
}

func (p *memPOS) UpdateItem(ctx context.Context, id string, payload reconcile.DownstreamPayload) error {
	return nil
}

func (p *memPOS) DeleteItem(ctx context.Context, id string) error { return nil }

func (p *memPOS) UploadImage(ctx context.Context, id, imageURL string) error { return nil }

func newMenuService(t *testing.T, opts Options) (*Service, *memSource, *memPOS) {
	t.Helper()
	src := &memSource{records: []reconcile.SourceRecord{
		{ID: "1", Name: "Latte", Category: "Coffee", Price: decimal.NewFromInt(80)},
	}}
	pos := &memPOS{}
	engine := reconcile.NewEngine(menu.NewAdapter(), src, pos, zap.NewNop())
	return NewService(engine, opts, zap.NewNop()), src, pos
}

func TestService_SyncArchivesReport(t *testing.T) {
	store := new(mocks.Client)
	var archived []byte
	store.On("PutObject", mock.Anything, "bucket", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "reports/menu/") && strings.HasSuffix(key, ".json")
	}), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			archived, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	svc, _, _ := newMenuService(t, Options{Storage: store, Bucket: "bucket"})

	report := svc.Sync(context.Background(), reconcile.SyncInput{})
	require.Empty(t, report.Errors)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, "menu", report.Family)

	var stored reconcile.SyncReport
	require.NoError(t, json.Unmarshal(archived, &stored))
	assert.Equal(t, report.RunID, stored.RunID)
	assert.Equal(t, 1, stored.Created)
	store.AssertExpectations(t)
}

func TestService_SyncWhileLocked(t *testing.T) {
	locker := lock.NewLocal()
	lease, err := locker.Acquire(context.Background(), "sync:menu", time.Minute)
	require.NoError(t, err)
	defer lease.Release(context.Background())

	svc, _, pos := newMenuService(t, Options{Locker: locker})
	report := svc.Sync(context.Background(), reconcile.SyncInput{})

	require.True(t, report.HasFatal())
	assert.True(t, errors.Is(report.Failures[0], reconcile.ErrRunInProgress))
	assert.Equal(t, "Fatal error: menu: sync already in progress", report.Errors[0])
	assert.Empty(t, pos.items)
}

func TestService_SyncReleasesLock(t *testing.T) {
	locker := lock.NewLocal()
	svc, _, _ := newMenuService(t, Options{Locker: locker})

	first := svc.Sync(context.Background(), reconcile.SyncInput{})
	second := svc.Sync(context.Background(), reconcile.SyncInput{})

	assert.False(t, first.HasFatal())
	assert.False(t, second.HasFatal())
	assert.Zero(t, second.Created)
}

func TestService_StatusCoalesces(t *testing.T) {
	svc, src, _ := newMenuService(t, Options{})
	src.block = make(chan struct{})

	var wg sync.WaitGroup
	results := make([][]reconcile.SyncState, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Status(context.Background())
		}(i)
	}

	// Let both callers reach the singleflight group before releasing the read
	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls == 1
	}, time.Second, time.Millisecond)
	close(src.block)
	wg.Wait()

	for _, states := range results {
		require.Len(t, states, 1)
		assert.Equal(t, reconcile.StatusNotInDownstream, states[0].Status)
	}
}

func TestService_StatusCancelledCallerDoesNotFailOthers(t *testing.T) {
	svc, src, _ := newMenuService(t, Options{})
	src.block = make(chan struct{})

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Status(first)
		firstErr <- err
	}()

	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls == 1
	}, time.Second, time.Millisecond)

	type result struct {
		states []reconcile.SyncState
		err    error
	}
	second := make(chan result, 1)
	go func() {
		states, err := svc.Status(context.Background())
		second <- result{states, err}
	}()
	// Give the second caller time to join the in-flight read
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(src.block)
	res := <-second
	require.NoError(t, res.err)
	require.Len(t, res.states, 1)

	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Equal(t, 1, src.calls)
}

func TestService_StatusError(t *testing.T) {
	svc, _, pos := newMenuService(t, Options{})
	pos.err = errors.New("pos down")

	_, err := svc.Status(context.Background())
	assert.ErrorContains(t, err, "pos down")
}

func TestService_Reports(t *testing.T) {
	store := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "reports/menu/0190a000-0000-7000-8000-000000000001.json"}
	ch <- minio.ObjectInfo{Key: "reports/menu/0190a000-0000-7000-8000-000000000002.json"}
	ch <- minio.ObjectInfo{Key: "reports/menu/notes.txt"}
	close(ch)
	store.On("ListObjects", mock.Anything, "bucket", minio.ListObjectsOptions{Prefix: "reports/menu/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	svc, _, _ := newMenuService(t, Options{Storage: store, Bucket: "bucket"})

	ids, err := svc.Reports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0190a000-0000-7000-8000-000000000002",
		"0190a000-0000-7000-8000-000000000001",
	}, ids)
}

func TestService_Report(t *testing.T) {
	id := "0190a000-0000-7000-8000-000000000001"
	body, err := json.Marshal(reconcile.SyncReport{RunID: id, Family: "menu", Created: 3})
	require.NoError(t, err)

	store := new(mocks.Client)
	store.On("GetObject", mock.Anything, "bucket", "reports/menu/"+id+".json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(body)), nil)
	store.On("GetObject", mock.Anything, "bucket", mock.Anything, mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "missing"})

	svc, _, _ := newMenuService(t, Options{Storage: store, Bucket: "bucket"})

	report, err := svc.Report(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Created)

	_, err = svc.Report(context.Background(), "0190a000-0000-7000-8000-000000000009")
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = svc.Report(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestService_ArchiveDisabled(t *testing.T) {
	svc, _, _ := newMenuService(t, Options{})

	_, err := svc.Reports(context.Background())
	assert.ErrorIs(t, err, ErrArchiveDisabled)
	_, err = svc.Report(context.Background(), "x")
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}
