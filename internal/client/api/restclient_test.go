package api

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/common"
	"github.com/dmitrijs2005/qrtrack/internal/stub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokens is an in-memory TokenSource recording invalidations.
type memTokens struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (m *memTokens) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.invalidated++
	return nil
}

func (m *memTokens) set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func newTestClient(t *testing.T) (*RESTClient, *memTokens, *stub.Store) {
	t.Helper()
	store := stub.NewStore()
	srv := httptest.NewServer(stub.NewRouter(store, "http://stub.local"))
	t.Cleanup(srv.Close)

	tokens := &memTokens{}
	return NewRESTClient(srv.URL+"/api", 5*time.Second, tokens), tokens, store
}

func signUp(t *testing.T, c *RESTClient, tokens *memTokens, email string) *models.User {
	t.Helper()
	resp, err := c.Register(context.Background(), models.RegisterRequest{
		Email:    email,
		Password: "secret1",
		Name:     "Test",
	})
	require.NoError(t, err)
	tokens.set(resp.Token)
	return &resp.User
}

func TestRegisterLoginMe(t *testing.T) {
	c, tokens, _ := newTestClient(t)
	ctx := context.Background()

	user := signUp(t, c, tokens, "a@example.com")
	assert.Equal(t, models.PlanFree, user.Plan)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
	require.NotNil(t, me.Usage)
	assert.Equal(t, 0, me.Usage.QRCodesCreated)

	_, err = c.Login(ctx, models.Credentials{Email: "a@example.com", Password: "nope"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestGenerateAndLifecycle(t *testing.T) {
	c, tokens, _ := newTestClient(t)
	ctx := context.Background()
	signUp(t, c, tokens, "a@example.com")

	code, err := c.Generate(ctx, models.GenerateRequest{URL: "https://example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, code.ID)
	assert.NotEmpty(t, code.ShortID)
	assert.True(t, code.IsActive)
	assert.Contains(t, code.ImageDataURL, "data:image/png;base64,")
	assert.Equal(t, 256, code.Customization.Size)

	title := "Campaign"
	updated, err := c.Update(ctx, code.ID, models.UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Campaign", updated.Title)

	got, err := c.Get(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campaign", got.Title)

	page, err := c.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 1, page.Pagination.TotalItems)

	require.NoError(t, c.Delete(ctx, code.ID))

	_, err = c.Get(ctx, code.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPlanLimitMapsToSentinel(t *testing.T) {
	c, tokens, _ := newTestClient(t)
	ctx := context.Background()
	signUp(t, c, tokens, "a@example.com")

	for i := 0; i < 5; i++ {
		_, err := c.Generate(ctx, models.GenerateRequest{URL: "https://example.com"})
		require.NoError(t, err)
	}

	_, err := c.Generate(ctx, models.GenerateRequest{URL: "https://example.com"})
	assert.ErrorIs(t, err, common.ErrorPlanLimit)
}

func TestValidationErrorMapsToSentinel(t *testing.T) {
	c, _, _ := newTestClient(t)

	_, err := c.Generate(context.Background(), models.GenerateRequest{URL: "not a url"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	c, tokens, _ := newTestClient(t)
	tokens.set("stale-token")

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, 1, tokens.invalidated)
	assert.Empty(t, tokens.token)
}

func TestDownloadReturnsBytesAndContentType(t *testing.T) {
	c, tokens, store := newTestClient(t)
	ctx := context.Background()
	user := signUp(t, c, tokens, "a@example.com")
	store.SetPlan(user.ID, models.PlanPro)

	code, err := c.Generate(ctx, models.GenerateRequest{URL: "https://example.com"})
	require.NoError(t, err)

	data, mime, err := c.Download(ctx, code.ID, export.FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mime)
	assert.Contains(t, string(data), "<svg")

	data, mime, err = c.Download(ctx, code.ID, export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.NotEmpty(t, data)
}

func TestDownloadGatedByPlan(t *testing.T) {
	c, tokens, _ := newTestClient(t)
	ctx := context.Background()
	signUp(t, c, tokens, "a@example.com")

	code, err := c.Generate(ctx, models.GenerateRequest{URL: "https://example.com"})
	require.NoError(t, err)

	_, _, err = c.Download(ctx, code.ID, export.FormatSVG)
	assert.ErrorIs(t, err, common.ErrorPlanLimit)
}

func TestAnalyticsAndBilling(t *testing.T) {
	c, tokens, store := newTestClient(t)
	ctx := context.Background()
	user := signUp(t, c, tokens, "a@example.com")
	store.SetPlan(user.ID, models.PlanPro)

	code, err := c.Generate(ctx, models.GenerateRequest{URL: "https://example.com"})
	require.NoError(t, err)
	store.RecordScan(code.ID)

	overview, err := c.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Overview.TotalQRCodes)
	assert.Equal(t, 1, overview.Overview.TotalScans)

	qa, err := c.QRAnalytics(ctx, code.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, qa.TotalScans)

	plans, err := c.Plans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans.Plans, 4)
	assert.NotEmpty(t, plans.PublishableKey)

	url, err := c.CreateCheckoutSession(ctx, models.PlanBusiness)
	require.NoError(t, err)
	assert.Contains(t, url, "https://")
}

func TestServerUnreachable(t *testing.T) {
	c := NewRESTClient("http://127.0.0.1:1/api", 500*time.Millisecond, &memTokens{})

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
