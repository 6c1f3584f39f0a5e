package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if m := a.Mode(); m != "" {
		return fmt.Sprintf("(%s)", m)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to PromiseKeeper CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.config != nil && a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	// a missed promise is the first thing to deal with
	_ = a.List(ctx)

	status := a.getStatus
	if !a.interactive {
		status = nil
	}
	runREPL(ctx, a, status, a.reader)
}
