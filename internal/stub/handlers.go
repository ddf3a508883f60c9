package stub

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pixelPNG is a valid 1x1 transparent PNG, served in place of a real
// QR symbol. The client only cares that it is well-formed image data.
var pixelPNG = mustDecode("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func mustDecode(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func pixelDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pixelPNG)
}

type server struct {
	store   *Store
	baseURL string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// currentUser resolves the Authorization header; ok is false when the
// header is present but the token is unknown (expired or revoked).
func (s *server) currentUser(r *http.Request) (*models.User, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return nil, true
	}
	token := strings.TrimPrefix(h, "Bearer ")
	u, ok := s.store.Authenticate(token)
	if !ok {
		return nil, false
	}
	return u, true
}

func (s *server) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	u, ok := s.currentUser(r)
	if !ok || u == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return u
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "email and a password of at least 6 characters are required")
		return
	}
	token, user, err := s.store.Register(req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, user, err := s.store.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		writeError(w, http.StatusBadRequest, "please enter a valid URL")
		return
	}

	userID := ""
	if user != nil {
		limits := user.Limits
		if limits.MaxQRCodes > 0 && user.Usage != nil && user.Usage.QRCodesCreated >= limits.MaxQRCodes {
			writeError(w, http.StatusForbidden,
				fmt.Sprintf("plan limit reached: the %s plan allows %d QR codes", user.Plan, limits.MaxQRCodes))
			return
		}
		userID = user.ID
	}

	custom := models.Customization{
		Size:                 req.Size,
		ErrorCorrectionLevel: req.ErrorCorrectionLevel,
		ForegroundColor:      req.ForegroundColor,
		BackgroundColor:      req.BackgroundColor,
	}
	if custom.Size == 0 {
		custom.Size = 256
	}
	if custom.ErrorCorrectionLevel == "" {
		custom.ErrorCorrectionLevel = models.ECMedium
	}
	if custom.ForegroundColor == "" {
		custom.ForegroundColor = "#000000"
	}
	if custom.BackgroundColor == "" {
		custom.BackgroundColor = "#FFFFFF"
	}

	shortID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	code := &models.QRCode{
		ID:            uuid.NewString(),
		ShortID:       shortID,
		ShortURL:      s.baseURL + "/r/" + shortID,
		OriginalURL:   req.URL,
		Title:         req.Title,
		Description:   req.Description,
		ImageDataURL:  pixelDataURL(),
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		Customization: custom,
	}
	s.store.AddCode(userID, code)
	writeJSON(w, http.StatusCreated, code)
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	all := s.store.CodesOf(u.ID)
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	pageItems := all[start:end]
	writeJSON(w, http.StatusOK, models.QRCodePage{
		Data: pageItems,
		Pagination: models.Pagination{
			Current:    page,
			Total:      (len(all) + limit - 1) / limit,
			Count:      len(pageItems),
			TotalItems: len(all),
		},
	})
}

// ownedCode loads the code from the path and checks it belongs to the
// caller. Codes of other users are reported as not found.
func (s *server) ownedCode(w http.ResponseWriter, r *http.Request, u *models.User) *models.QRCode {
	id := mux.Vars(r)["id"]
	code, owner, ok := s.store.Code(id)
	if !ok || owner != u.ID {
		writeError(w, http.StatusNotFound, "QR code not found")
		return nil
	}
	return code
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	code := s.ownedCode(w, r, u)
	if code == nil {
		return
	}
	if n := s.store.ScanCount(code.ID); n > 0 {
		code.Analytics = &models.AnalyticsSummary{TotalScans: n}
	}
	writeJSON(w, http.StatusOK, code)
}

func (s *server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	code := s.ownedCode(w, r, u)
	if code == nil {
		return
	}

	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.store.UpdateCode(code.ID, func(c *models.QRCode) {
		if req.Title != nil {
			c.Title = *req.Title
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.IsActive != nil {
			c.IsActive = *req.IsActive
		}
		*code = *c
	})
	writeJSON(w, http.StatusOK, code)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	code := s.ownedCode(w, r, u)
	if code == nil {
		return
	}
	s.store.DeleteCode(code.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "QR code deleted"})
}

func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	if !u.Limits.CanExportData {
		writeError(w, http.StatusForbidden, "exporting requires a paid plan")
		return
	}
	code := s.ownedCode(w, r, u)
	if code == nil {
		return
	}

	switch mux.Vars(r)["format"] {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><title>%s</title></svg>`, code.ShortID)
	case "png", "pdf":
		// PDF rendering is not implemented server-side; PNG bytes are
		// returned for both, and clients name the file accordingly.
		w.Header().Set("Content-Type", "image/png")
		w.Write(pixelPNG)
	default:
		writeError(w, http.StatusBadRequest, "unsupported format")
	}
}

func (s *server) handleOverview(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	if !u.Limits.CanTrackAnalytics {
		writeError(w, http.StatusForbidden, "analytics requires a paid plan")
		return
	}

	codes := s.store.CodesOf(u.ID)
	var out models.DashboardAnalytics
	out.Overview.TotalQRCodes = len(codes)
	for _, c := range codes {
		if c.IsActive {
			out.Overview.ActiveQRCodes++
		}
		n := s.store.ScanCount(c.ID)
		out.Overview.TotalScans += n
		out.Overview.ScansThisMonth += n
		out.TopPerforming = append(out.TopPerforming, struct {
			ID          string     `json:"id"`
			Title       string     `json:"title"`
			ShortID     string     `json:"shortId"`
			TotalScans  int        `json:"totalScans"`
			LastScanned *time.Time `json:"lastScanned,omitempty"`
		}{ID: c.ID, Title: c.Title, ShortID: c.ShortID, TotalScans: n})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleQRAnalytics(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	if !u.Limits.CanTrackAnalytics {
		writeError(w, http.StatusForbidden, "analytics requires a paid plan")
		return
	}
	code := s.ownedCode(w, r, u)
	if code == nil {
		return
	}

	out := models.QRCodeAnalytics{
		TotalScans: s.store.ScanCount(code.ID),
		CreatedAt:  code.CreatedAt,
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handlePlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.PlansResponse{
		Plans: []models.PlanInfo{
			{Type: models.PlanFree, Name: "Free", PriceCents: 0, Period: "month", Limits: PlanLimits[models.PlanFree]},
			{Type: models.PlanPro, Name: "Pro", PriceCents: 999, Period: "month", Limits: PlanLimits[models.PlanPro]},
			{Type: models.PlanBusiness, Name: "Business", PriceCents: 2999, Period: "month", Limits: PlanLimits[models.PlanBusiness]},
			{Type: models.PlanEnterprise, Name: "Enterprise", PriceCents: 9999, Period: "month", Limits: PlanLimits[models.PlanEnterprise]},
		},
		PublishableKey: "pk_test_stub",
	})
}

func (s *server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	u := s.requireUser(w, r)
	if u == nil {
		return
	}
	var req struct {
		PlanType models.Plan `json:"planType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.PlanType.Valid() {
		writeError(w, http.StatusBadRequest, "unknown plan")
		return
	}
	// No payment provider here: the plan switch is applied immediately
	// and a fake checkout URL is returned for the client to print.
	s.store.SetPlan(u.ID, req.PlanType)
	writeJSON(w, http.StatusOK, models.CheckoutSession{
		URL: "https://checkout.stripe.example/session/" + uuid.NewString(),
	})
}

// handleRedirect resolves a short id, counts the scan and redirects,
// mimicking what the public redirect service does.
func (s *server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	shortID := mux.Vars(r)["shortId"]
	for _, code := range s.store.codesBy(shortID) {
		if !code.IsActive {
			writeError(w, http.StatusGone, "QR code is disabled")
			return
		}
		s.store.RecordScan(code.ID)
		http.Redirect(w, r, code.OriginalURL, http.StatusFound)
		return
	}
	writeError(w, http.StatusNotFound, "QR code not found")
}

func (s *Store) codesBy(shortID string) []models.QRCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.QRCode
	for _, c := range s.codes {
		if c.ShortID == shortID {
			out = append(out, *c)
		}
	}
	return out
}
