package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
)

func (a *App) promiseID(args []string) (int64, error) {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		var err error
		if text, err = GetSimpleText(a.reader, "Promise ID", a.out); err != nil {
			return 0, err
		}
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(text, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid promise id %q", text)
	}
	return id, nil
}

func (a *App) transition(ctx context.Context, args []string,
	op func(ctx context.Context, id int64) (*pb.Promise, error), done string) error {

	id, err := a.promiseID(args)
	if err != nil {
		return err
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := op(callCtx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Promise #%d %s.\n", p.ID, done)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.transition(ctx, args, a.client.CompletePromise, "kept")
}

func (a *App) Forfeit(ctx context.Context, args []string) error {
	if err := a.transition(ctx, args, a.client.ForfeitPromise, "forfeited"); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Run 'reframe' to turn it into a new promise.")
	return nil
}
