package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/promisekeeper/internal/client/client"
	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
)

// userMessage strips transport wrapping from errors shown at the prompt.
func userMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server is unavailable, try again later"
	case errors.Is(err, client.ErrNotFound):
		return "promise not found"
	case errors.Is(err, io.EOF):
		return "input closed"
	}
	return err.Error()
}

const dashboardSnapshotKey = "dashboard"

// List prints the dashboard. While the server is unreachable it falls back
// to the last dashboard saved locally, if any.
func (a *App) List(ctx context.Context) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	d, err := a.client.Dashboard(callCtx)
	if errors.Is(err, client.ErrUnavailable) {
		if saved, at := a.loadDashboard(ctx); saved != nil {
			fmt.Fprintf(a.out, "Server is unavailable; showing the dashboard saved %s.\n", at.Format(time.DateTime))
			printDashboard(a.out, saved)
			return nil
		}
	}
	if err != nil {
		return err
	}

	a.saveDashboard(ctx, d)
	printDashboard(a.out, d)
	return nil
}

func (a *App) saveDashboard(ctx context.Context, d *pb.DashboardResponse) {
	if a.snapshots == nil {
		return
	}
	b, err := json.Marshal(d)
	if err == nil {
		err = a.snapshots.Save(ctx, dashboardSnapshotKey, b, time.Now())
	}
	if err != nil {
		fmt.Fprintln(a.out, "Could not save local snapshot:", err)
	}
}

func (a *App) loadDashboard(ctx context.Context) (*pb.DashboardResponse, time.Time) {
	if a.snapshots == nil {
		return nil, time.Time{}
	}
	s, err := a.snapshots.Get(ctx, dashboardSnapshotKey)
	if err != nil || s == nil {
		return nil, time.Time{}
	}
	var d pb.DashboardResponse
	if err := json.Unmarshal(s.Value, &d); err != nil {
		return nil, time.Time{}
	}
	return &d, s.SavedAt
}

func printDashboard(w io.Writer, d *pb.DashboardResponse) {
	if d.CurrentMissed != nil {
		m := d.CurrentMissed
		fmt.Fprintf(w, "Missed: #%d %s\n  %s\n", m.ID, m.Name, m.Content)
		fmt.Fprintf(w, "Run 'reframe %d' to turn it into a new promise.\n", m.ID)
	}

	if d.Score != nil {
		fmt.Fprintf(w, "Accountability score: %d%%\n", *d.Score)
	}

	if len(d.Active) == 0 {
		fmt.Fprintln(w, "No active promises.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tTIME LEFT")
	for _, p := range d.Active {
		name := p.Name
		if p.Participants != nil && *p.Participants != "" {
			name = fmt.Sprintf("%s (with %s)", name, *p.Participants)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, name, p.PromiseType, timeLeft(p))
	}
	tw.Flush()
}

func timeLeft(p pb.Promise) string {
	if p.TimeLeft == "" {
		return "due"
	}
	return strings.TrimSpace(p.TimeLeft)
}
