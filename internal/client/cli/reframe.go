package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
)

var errNoMissed = errors.New("there is no missed promise to reframe")

// Reframe walks the user through replacing a missed promise: why it was
// missed, which pattern fits, one of the suggested fixes and the final
// wording of the new promise.
func (a *App) Reframe(ctx context.Context, args []string) error {
	id, err := a.missedID(ctx, args)
	if err != nil {
		return err
	}

	reason, err := GetMultiline(a.reader, "Why did you miss it?", a.out)
	if err != nil {
		return err
	}
	if reason == "" {
		return errEmptyInput
	}

	category, err := a.chooseCategory(ctx)
	if err != nil {
		return err
	}

	solCtx, cancel := a.callCtx(ctx)
	sol, err := a.client.RequestSolutions(solCtx, &pb.SolutionsRequest{ID: id, Reason: reason, Category: category})
	cancel()
	if err != nil {
		return err
	}
	if sol.Error {
		fmt.Fprintln(a.out, sol.Raw)
	}

	option, err := a.chooseSolution(sol.Options)
	if err != nil {
		return err
	}

	draftCtx, cancel := a.callCtx(ctx)
	draft, err := a.client.DraftRevision(draftCtx, &pb.DraftRevisionRequest{
		ID: id, Reason: reason, Category: category, Label: option.Label, SolutionText: option.Text,
	})
	cancel()
	if err != nil {
		return err
	}
	if draft.Error {
		fmt.Fprintln(a.out, draft.Raw)
	}

	req := &pb.ApplyReframeRequest{ID: id}
	if req.Name, err = GetWithDefault(a.reader, "Name", draft.Name, a.out); err != nil {
		return err
	}
	if req.Content, err = GetWithDefault(a.reader, "Promise", draft.Content, a.out); err != nil {
		return err
	}
	if req.Deadline, err = GetWithDefault(a.reader, "Deadline", draft.Deadline, a.out); err != nil {
		return err
	}

	applyCtx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.client.ApplyReframe(applyCtx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Promise #%d replaced by #%d.\n", id, p.ID)
	return nil
}

// missedID uses the id argument when given, otherwise the dashboard's
// current missed promise.
func (a *App) missedID(ctx context.Context, args []string) (int64, error) {
	if len(args) > 0 {
		return a.promiseID(args)
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	d, err := a.client.Dashboard(callCtx)
	if err != nil {
		return 0, err
	}
	if d.CurrentMissed == nil {
		return 0, errNoMissed
	}
	m := d.CurrentMissed
	fmt.Fprintf(a.out, "Reframing #%d %s\n  %s\n", m.ID, m.Name, m.Content)
	return m.ID, nil
}

func (a *App) chooseCategory(ctx context.Context) (string, error) {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	cats, err := a.client.ListCategories(callCtx)
	if err != nil {
		return "", err
	}
	for _, c := range cats {
		fmt.Fprintf(a.out, "  %s. %s\n", c.Code, c.Label)
	}
	// the server accepts both codes and names
	return GetSimpleText(a.reader, "Which one fits best? (number or name, Enter to skip)", a.out)
}

func (a *App) chooseSolution(options []pb.Solution) (pb.Solution, error) {
	if len(options) == 0 {
		return pb.Solution{}, errors.New("no solutions offered")
	}
	for i, o := range options {
		fmt.Fprintf(a.out, "  %d) %s: %s\n", i+1, o.Label, o.Text)
	}
	for {
		text, err := GetWithDefault(a.reader, "Pick a solution", "1", a.out)
		if err != nil {
			return pb.Solution{}, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(a.out, "Enter a number from 1 to %d.\n", len(options))
	}
}
