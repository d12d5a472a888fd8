// Package server wires and runs the development backend: an in-memory
// stand-in for the platform API used for local console runs and end-to-end
// tests of the session refresh flow.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/config"
	"github.com/dmitrijs2005/eventadmin/internal/server/httpapi"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	"github.com/dmitrijs2005/eventadmin/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	svc    httpapi.Services
}

// NewApp builds the services on a fresh in-memory store and seeds the super
// administrator from the configuration.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	store := memory.NewStore()
	svc := httpapi.Services{
		Admins:       services.NewAdminService(store, c, logger),
		Events:       services.NewEventService(store, logger),
		Posts:        services.NewPostService(store, logger),
		Users:        services.NewUserService(store, logger),
		Transactions: services.NewTransactionService(store),
	}

	_, err := svc.Admins.Add(ctx, models.NewAdmin{
		Name:     "Super Admin",
		Email:    c.AdminEmail,
		Password: c.AdminPassword,
		Role:     models.RoleSuperAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	if c.SeedSampleData {
		services.SeedSampleData(store, time.Now())
		logger.Info(ctx, "Sample data seeded")
	}

	return &App{config: c, logger: logger, svc: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.svc)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is done.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "access_ttl", app.config.AccessTokenValidityDuration.String())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
