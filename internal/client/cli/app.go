package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/client/client"
	"github.com/dmitrijs2005/promisekeeper/internal/client/config"
	"github.com/dmitrijs2005/promisekeeper/internal/client/repositories/snapshots"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	client      client.Client
	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// snapshots is nil when the local store is disabled or failed to open.
	snapshots  snapshots.Repository
	closeLocal func() error

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewPromiseKeeperClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:      c,
		client:      apiClient,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}

	if c.LocalDir != "" {
		db, err := snapshots.Open(context.Background(), c.LocalDir)
		if err != nil {
			log.Printf("local snapshots disabled: %v", err)
		} else {
			app.snapshots = snapshots.NewSQLiteRepository(db)
			app.closeLocal = db.Close
		}
	}

	return app, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed && a.interactive {
		fmt.Fprintf(a.out, "\n[server is %s]\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	if a.closeLocal != nil {
		defer a.closeLocal()
	}
	a.Root(ctx)
}

// callCtx bounds a single server call by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.client.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
