package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/qrtrack/internal/client/api"
	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/qrtrack/internal/common"
)

// fakeClient implements api.Client for unit tests. Each call records its
// arguments and returns the configured result.
type fakeClient struct {
	RegisterRet *models.AuthResponse
	RegisterErr error
	LoginRet    *models.AuthResponse
	LoginErr    error
	MeRet       *models.User
	MeErr       error

	GenerateRet *models.QRCode
	GenerateErr error
	ListRet     *models.QRCodePage
	ListErr     error
	GetRet      *models.QRCode
	GetErr      error
	UpdateRet   *models.QRCode
	UpdateErr   error
	DeleteErr   error

	DownloadRet  []byte
	DownloadMIME string
	DownloadErr  error

	OverviewRet    *models.DashboardAnalytics
	OverviewErr    error
	QRAnalyticsRet *models.QRCodeAnalytics
	QRAnalyticsErr error

	PlansRet    *models.PlansResponse
	PlansErr    error
	CheckoutRet string
	CheckoutErr error

	LastRegister models.RegisterRequest
	LastLogin    models.Credentials
	LastGenerate models.GenerateRequest
	LastUpdateID string
	LastUpdate   models.UpdateRequest
	LastDeleteID string
	LastGetID    string
	LastCheckout models.Plan

	MeCalls       int
	GenerateCalls int
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.LastLogin = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.QRCode, error) {
	f.GenerateCalls++
	f.LastGenerate = req
	return f.GenerateRet, f.GenerateErr
}

func (f *fakeClient) List(ctx context.Context, page, limit int) (*models.QRCodePage, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeClient) Get(ctx context.Context, id string) (*models.QRCode, error) {
	f.LastGetID = id
	return f.GetRet, f.GetErr
}

func (f *fakeClient) Update(ctx context.Context, id string, req models.UpdateRequest) (*models.QRCode, error) {
	f.LastUpdateID = id
	f.LastUpdate = req
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) Download(ctx context.Context, id string, format export.Format) ([]byte, string, error) {
	return f.DownloadRet, f.DownloadMIME, f.DownloadErr
}

func (f *fakeClient) Overview(ctx context.Context) (*models.DashboardAnalytics, error) {
	return f.OverviewRet, f.OverviewErr
}

func (f *fakeClient) QRAnalytics(ctx context.Context, id string) (*models.QRCodeAnalytics, error) {
	return f.QRAnalyticsRet, f.QRAnalyticsErr
}

func (f *fakeClient) Plans(ctx context.Context) (*models.PlansResponse, error) {
	return f.PlansRet, f.PlansErr
}

func (f *fakeClient) CreateCheckoutSession(ctx context.Context, plan models.Plan) (string, error) {
	f.LastCheckout = plan
	return f.CheckoutRet, f.CheckoutErr
}

// memMeta is an in-memory metadata.Repository backing the session store.
type memMeta struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemMeta() *memMeta { return &memMeta{m: make(map[string][]byte)} }

func (r *memMeta) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[key], nil
}

func (r *memMeta) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key] = value
	return nil
}

func (r *memMeta) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, key)
	return nil
}

func (r *memMeta) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[string][]byte)
	return nil
}

func (r *memMeta) Tx(ctx context.Context, fn func(ctx context.Context, m metadata.Repository) error) error {
	return fn(ctx, r)
}

// memCache is an in-memory artifacts.Repository.
type memCache struct {
	mu    sync.Mutex
	codes map[string]models.QRCode

	UpsertErr error
	ListErr   error
}

func newMemCache() *memCache { return &memCache{codes: make(map[string]models.QRCode)} }

func (r *memCache) Upsert(ctx context.Context, code *models.QRCode) error {
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[code.ID] = *code
	return nil
}

func (r *memCache) UpsertAll(ctx context.Context, codes []models.QRCode) error {
	for i := range codes {
		if err := r.Upsert(ctx, &codes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memCache) List(ctx context.Context) ([]models.QRCode, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.QRCode, 0, len(r.codes))
	for _, c := range r.codes {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCache) Get(ctx context.Context, id string) (*models.QRCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *memCache) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, id)
	return nil
}

func (r *memCache) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = make(map[string]models.QRCode)
	return nil
}

func (r *memCache) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.codes)
}
