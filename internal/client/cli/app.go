// Package cli implements the interactive qrtrack client: a prompt loop
// dispatching to application services, with per-code export format
// selection and plan-aware hints.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/qrtrack/internal/client/api"
	"github.com/dmitrijs2005/qrtrack/internal/client/config"
	"github.com/dmitrijs2005/qrtrack/internal/client/export"
	"github.com/dmitrijs2005/qrtrack/internal/client/services"
	"github.com/dmitrijs2005/qrtrack/internal/client/session"
	"github.com/dmitrijs2005/qrtrack/internal/client/store"
	"github.com/dmitrijs2005/qrtrack/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	reader  *bufio.Reader
	session *session.Store
	repos   *store.Repositories

	auth      services.AuthService
	qr        services.QRService
	analytics services.AnalyticsService
	billing   services.BillingService
	exporter  *export.Exporter

	userEmail string
	form      genForm
	// formats remembers the export format picked per code id; unset codes
	// download as png.
	formats map[string]export.Format
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	sess := session.NewStore(repos.Metadata)
	apiClient := api.NewRESTClient(c.ServerBaseURL, c.RequestTimeout, sess)

	saver, err := export.NewFileSaver(c.DownloadDir)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:    c,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		session:   sess,
		repos:     repos,
		auth:      services.NewAuthService(apiClient, sess, repos.Artifacts),
		qr:        services.NewQRService(apiClient, repos.Artifacts, sess, log),
		analytics: services.NewAnalyticsService(apiClient, sess),
		billing:   services.NewBillingService(apiClient, sess),
		exporter:  export.NewExporter(saver, apiClient, log),
		formats:   make(map[string]export.Format),
	}

	sess.OnInvalidate(func() {
		app.userEmail = ""
		printlnFn("Session expired, please log in again")
	})

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}

// restoreSession picks up a previous run's session so the user does not
// have to log in every time.
func (a *App) restoreSession(ctx context.Context) {
	token, err := a.session.Token(ctx)
	if err != nil || token == "" {
		return
	}
	user, err := a.session.User(ctx)
	if err != nil || user == nil {
		return
	}
	a.userEmail = user.Email
	printlnFn("Resumed session for", user.Email)
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()

	printlnFn("qrtrack CLI (type 'help' for commands)")
	a.restoreSession(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
