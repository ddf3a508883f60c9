package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/dmitrijs2005/qrtrack/internal/common"
	"github.com/google/uuid"
)

// TokenSource supplies the bearer token and is told when the server rejects
// it. The session store implements this; keeping it an interface avoids an
// import cycle and lets tests stub auth entirely.
type TokenSource interface {
	// Token returns the current token, or "" when not signed in.
	Token(ctx context.Context) (string, error)
	// Invalidate clears the stored token after a 401 and fires the
	// session's invalidation hook.
	Invalidate(ctx context.Context) error
}

// RESTClient is the HTTP implementation of Client.
type RESTClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewRESTClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:5001/api"). timeout bounds every request.
func NewRESTClient(baseURL string, timeout time.Duration, tokens TokenSource) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// errorBody is the backend's uniform error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *RESTClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	return req, nil
}

// do runs the request and decodes a 2xx JSON body into out (when non-nil).
// Transport failures map to ErrUnavailable; status codes map through
// mapStatus, with a 401 also invalidating the stored session.
func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(ctx, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *RESTClient) mapStatus(ctx context.Context, resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}
	if msg == "" {
		msg = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.tokens != nil {
			_ = c.tokens.Invalidate(ctx)
		}
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, msg)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrorPlanLimit, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrServer, msg)
	default:
		return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
	}
}

func (c *RESTClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *RESTClient) Generate(ctx context.Context, req models.GenerateRequest) (*models.QRCode, error) {
	var out models.QRCode
	if err := c.do(ctx, http.MethodPost, "/qr/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) List(ctx context.Context, page, limit int) (*models.QRCodePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out models.QRCodePage
	if err := c.do(ctx, http.MethodGet, "/qr/user/list?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Get(ctx context.Context, id string) (*models.QRCode, error) {
	var out models.QRCode
	if err := c.do(ctx, http.MethodGet, "/qr/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Update(ctx context.Context, id string, req models.UpdateRequest) (*models.QRCode, error) {
	var out models.QRCode
	if err := c.do(ctx, http.MethodPut, "/qr/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/qr/"+url.PathEscape(id), nil, nil)
}

// Download fetches the server-rendered export as opaque bytes. Note the
// backend may serve image/png even for pdf; callers pick the extension via
// export.Format.Extension.
func (c *RESTClient) Download(ctx context.Context, id string, format export.Format) ([]byte, string, error) {
	path := "/qr/download/" + url.PathEscape(id) + "/" + url.PathEscape(string(format))

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", c.mapStatus(ctx, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read download: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *RESTClient) Overview(ctx context.Context) (*models.DashboardAnalytics, error) {
	var out models.DashboardAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) QRAnalytics(ctx context.Context, id string) (*models.QRCodeAnalytics, error) {
	var out models.QRCodeAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/qr/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Plans(ctx context.Context) (*models.PlansResponse, error) {
	var out models.PlansResponse
	if err := c.do(ctx, http.MethodGet, "/billing/plans", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) CreateCheckoutSession(ctx context.Context, plan models.Plan) (string, error) {
	req := struct {
		PlanType models.Plan `json:"planType"`
	}{PlanType: plan}

	var out models.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/billing/create-checkout-session", req, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

var _ Client = (*RESTClient)(nil)
var _ export.Downloader = (*RESTClient)(nil)
