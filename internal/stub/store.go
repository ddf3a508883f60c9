// Package stub is an in-memory double of the QR backend, implementing the
// REST contract the client consumes. It exists for local development and
// for client tests; it serves a canned image instead of encoding real QR
// symbols.
package stub

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/qrtrack/internal/client/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PlanLimits is the fixture of per-plan capabilities, mirroring the
// backend's published tiers. MaxQRCodes <= 0 means unlimited.
var PlanLimits = map[models.Plan]models.Limits{
	models.PlanFree:       {MaxQRCodes: 5, MaxScansPerMonth: 100},
	models.PlanPro:        {MaxQRCodes: 100, MaxScansPerMonth: 10000, CanCustomize: true, CanTrackAnalytics: true, CanExportData: true},
	models.PlanBusiness:   {MaxQRCodes: 500, MaxScansPerMonth: 100000, CanCustomize: true, CanTrackAnalytics: true, CanExportData: true},
	models.PlanEnterprise: {CanCustomize: true, CanTrackAnalytics: true, CanExportData: true},
}

type account struct {
	user         models.User
	passwordHash []byte
}

// Store holds all stub state behind one mutex; handler load is tiny.
// Tokens are signed rather than stored; only revocations are kept.
type Store struct {
	mu          sync.Mutex
	tokenSecret []byte
	accounts    map[string]*account       // by user id
	byEmail     map[string]string         // email -> user id
	revoked     map[string]struct{}       // revoked tokens
	codes       map[string]*models.QRCode // by code id
	owners      map[string]string         // code id -> user id
	scans       map[string]int            // code id -> scan count
}

func NewStore() *Store {
	return &Store{
		tokenSecret: newTokenSecret(),
		accounts:    make(map[string]*account),
		byEmail:     make(map[string]string),
		revoked:     make(map[string]struct{}),
		codes:       make(map[string]*models.QRCode),
		owners:      make(map[string]string),
		scans:       make(map[string]int),
	}
}

// Register creates an account on the free plan and returns a fresh token.
func (s *Store) Register(email, password, name string) (string, *models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return "", nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u := models.User{
		ID:     uuid.NewString(),
		Email:  email,
		Name:   name,
		Plan:   models.PlanFree,
		Limits: PlanLimits[models.PlanFree],
		Usage:  &models.Usage{},
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: hash}
	s.byEmail[email] = u.ID

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, s.snapshotUser(u.ID), nil
}

// Login verifies the password and issues a new token.
func (s *Store) Login(email, password string) (string, *models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	acc := s.accounts[id]
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.issueToken(id)
	if err != nil {
		return "", nil, err
	}
	return token, s.snapshotUser(id), nil
}

// Authenticate resolves a bearer token to a user snapshot. A token signed
// with another secret, expired, or revoked does not authenticate.
func (s *Store) Authenticate(token string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.revoked[token]; ok {
		return nil, false
	}
	id, ok := s.userIDFromToken(token)
	if !ok {
		return nil, false
	}
	if _, ok := s.accounts[id]; !ok {
		return nil, false
	}
	return s.snapshotUser(id), true
}

// RevokeToken blacklists a token; later requests with it get a 401.
func (s *Store) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = struct{}{}
}

// SetPlan switches an account's tier, as the billing webhook would.
func (s *Store) SetPlan(userID string, plan models.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[userID]; ok {
		acc.user.Plan = plan
		acc.user.Limits = PlanLimits[plan]
	}
}

// snapshotUser returns a copy with recomputed usage. Callers hold s.mu.
func (s *Store) snapshotUser(id string) *models.User {
	acc, ok := s.accounts[id]
	if !ok {
		return nil
	}
	u := acc.user

	created := 0
	scans := 0
	for codeID, owner := range s.owners {
		if owner == id {
			created++
			scans += s.scans[codeID]
		}
	}
	u.Usage = &models.Usage{
		QRCodesCreated: created,
		MonthlyScans:   scans,
		LastResetDate:  time.Now().UTC().Format("2006-01-02"),
	}
	return &u
}

// AddCode stores a generated code for a user ("" for anonymous codes,
// which are served but not counted against any account).
func (s *Store) AddCode(userID string, code *models.QRCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.ID] = code
	if userID != "" {
		s.owners[code.ID] = userID
	}
}

func (s *Store) Code(id string) (*models.QRCode, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[id]
	if !ok {
		return nil, "", false
	}
	cp := *code
	return &cp, s.owners[id], true
}

func (s *Store) UpdateCode(id string, fn func(*models.QRCode)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[id]
	if !ok {
		return false
	}
	fn(code)
	return true
}

func (s *Store) DeleteCode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, id)
	delete(s.owners, id)
	delete(s.scans, id)
}

// CodesOf lists a user's codes, newest first by creation time.
func (s *Store) CodesOf(userID string) []models.QRCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.QRCode
	for id, owner := range s.owners {
		if owner != userID {
			continue
		}
		code := *s.codes[id]
		if n := s.scans[id]; n > 0 {
			code.Analytics = &models.AnalyticsSummary{TotalScans: n}
		}
		out = append(out, code)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.After(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// RecordScan bumps the scan counter, as the redirect endpoint would.
func (s *Store) RecordScan(codeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[codeID]; ok {
		s.scans[codeID]++
	}
}

func (s *Store) ScanCount(codeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans[codeID]
}
