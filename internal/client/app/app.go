// Package app wires the configuration, the logger and the local database
// into a runnable process.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vpndb/internal/client/config"
	"github.com/dmitrijs2005/vpndb/internal/client/live"
	"github.com/dmitrijs2005/vpndb/internal/client/localdb"
	"github.com/dmitrijs2005/vpndb/internal/client/models"
	"github.com/dmitrijs2005/vpndb/internal/client/schema"
	"github.com/dmitrijs2005/vpndb/internal/filex"
	"github.com/dmitrijs2005/vpndb/internal/logging"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *localdb.Database
}

// NewApp opens the local database described by c. The caller must run
// Migrate before Run.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{Level: c.LogLevel, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if _, err := filex.EnsureDir(c.DataDir); err != nil {
		return nil, err
	}
	db, err := localdb.Open(ctx, c.StorePath(), c.PreferencesPath(), logger, localdb.Options{
		WriteTimeout: c.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return &App{config: c, logger: logger, db: db}, nil
}

// Database is the facade the app serves.
func (app *App) Database() *localdb.Database { return app.db }

func (app *App) Migrate(ctx context.Context) error {
	return app.db.Migrate(ctx)
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	stop := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-stop:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(stop)
	}
}

// Run logs a summary of the stored data. In watch mode it then follows the
// main observables until ctx is done or the process is interrupted.
func (app *App) Run(ctx context.Context) error {
	app.report(ctx)
	if !app.config.Watch {
		return nil
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	app.logger.Info(ctx, "watching local database", "dir", app.config.DataDir)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return follow(ctx, app.logger, "session", app.db.GetSession(ctx), func(s *models.Session) []any {
			if s == nil {
				return []any{"present", false}
			}
			return []any{"present", true, "username", s.Username, "premium", s.IsPremium}
		})
	})
	g.Go(func() error {
		return follow(ctx, app.logger, "servers", app.db.GetServersObservable(ctx), count[models.Server])
	})
	g.Go(func() error {
		return follow(ctx, app.logger, "networks", app.db.GetNetworks(ctx), count[models.WifiNetwork])
	})
	g.Go(func() error {
		return follow(ctx, app.logger, "favourites", app.db.GetFavNode(ctx), count[models.FavNode])
	})
	g.Go(func() error {
		return follow(ctx, app.logger, "notifications", app.db.GetNotifications(ctx), count[models.Notice])
	})
	g.Go(func() error {
		return follow(ctx, app.logger, "custom configs", app.db.GetCustomConfigs(ctx), count[models.CustomConfig])
	})
	g.Go(func() error {
		return follow(ctx, app.logger, "last connected node", app.db.GetLastConnectedNode(ctx), func(n *models.LastConnectedNode) []any {
			if n == nil {
				return []any{"present", false}
			}
			return []any{"present", true, "hostname", n.Hostname}
		})
	})
	err := g.Wait()

	app.logger.Info(context.WithoutCancel(ctx), "stopped watching")
	return err
}

func count[T any](vs []T) []any { return []any{"count", len(vs)} }

// follow logs every emission of sub until ctx is done or sub is closed.
func follow[T any](ctx context.Context, log logging.Logger, name string, sub *live.Subscription[T], attrs func(T) []any) error {
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			log.Info(ctx, "observable emitted", append([]any{"observable", name}, attrs(v)...)...)
		}
	}
}

func (app *App) report(ctx context.Context) {
	store := app.db.Store()
	version, _, err := store.Meta(ctx, schema.VersionKey)
	if err != nil {
		app.logger.Warn(ctx, "reading schema version failed", "error", err)
	}
	app.logger.Info(ctx, "local database", "store", store.Path(), "schema_version", version)

	for _, b := range models.Buckets() {
		rows, err := store.Scan(ctx, b)
		if err != nil {
			app.logger.Warn(ctx, "scanning bucket failed", "bucket", b, "error", err)
			continue
		}
		if len(rows) > 0 {
			app.logger.Info(ctx, "bucket", "name", b, "records", len(rows))
		}
	}
}
