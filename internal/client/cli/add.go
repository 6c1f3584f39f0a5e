package cli

import (
	"context"
	"errors"
	"fmt"

	pb "github.com/dmitrijs2005/promisekeeper/internal/proto"
)

var errEmptyInput = errors.New("nothing entered")

// Add asks for a free-form description, lets the server draft it into a
// promise and then confirms each field with the draft as the default.
func (a *App) Add(ctx context.Context) error {
	raw, err := GetMultiline(a.reader, "Describe what you want to promise:", a.out)
	if err != nil {
		return err
	}
	if raw == "" {
		return errEmptyInput
	}

	draft := a.draft(ctx, raw)

	req := &pb.CreatePromiseRequest{}

	if req.Name, err = GetWithDefault(a.reader, "Name", draft.Name, a.out); err != nil {
		return err
	}
	if req.PromiseType, err = GetWithDefault(a.reader, "Type (self/others)", draft.PromiseType, a.out); err != nil {
		return err
	}
	if req.Content, err = GetWithDefault(a.reader, "Promise", draft.Content, a.out); err != nil {
		return err
	}
	if req.Deadline, err = GetSimpleText(a.reader, "Deadline (e.g. 2h, 1d 30m, 45m)", a.out); err != nil {
		return err
	}
	if req.PromiseType == "others" || req.PromiseType == "other" {
		who, err := GetSimpleText(a.reader, "Who is it made to?", a.out)
		if err != nil {
			return err
		}
		if who != "" {
			req.Participants = &who
		}
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.client.CreatePromise(callCtx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Promise #%d created, due in %s.\n", p.ID, req.Deadline)
	return nil
}

// draft returns the collaborator's suggestion, or the raw text as content
// when the server could not produce one.
func (a *App) draft(ctx context.Context, raw string) pb.FormatPromiseResponse {
	fallback := pb.FormatPromiseResponse{Raw: raw, PromiseType: "self", Content: raw}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	r, err := a.client.FormatPromise(callCtx, raw)
	if err != nil {
		fmt.Fprintln(a.out, "Could not draft the promise:", userMessage(err))
		return fallback
	}
	if r.Error {
		fmt.Fprintln(a.out, r.Raw)
		return fallback
	}
	if r.PromiseType == "" {
		r.PromiseType = fallback.PromiseType
	}
	return *r
}
