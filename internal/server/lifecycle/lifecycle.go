// Package lifecycle holds the promise state machine and the pure parts of
// the evaluation sweep. It does no I/O; services apply its decisions to the
// store inside a transaction.
//
// Expiry is lazy: an ACTIVE promise past its deadline stays ACTIVE in storage
// until the next sweep runs, which happens on every dashboard read.
package lifecycle

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/timex"
)

// Event is something that can move a promise between states.
type Event string

const (
	EventComplete Event = "complete"
	EventForfeit  Event = "forfeit"
	EventExpire   Event = "expire"
)

// TransitionRule is one allowed edge of the state machine.
type TransitionRule struct {
	From  models.Status
	Event Event
	To    models.Status
}

// Rules is the full transition table. MISSED and COMPLETED have no outgoing
// edges: a reframe replaces the record instead of reviving it.
var Rules = []TransitionRule{
	{models.StatusActive, EventComplete, models.StatusCompleted},
	{models.StatusActive, EventForfeit, models.StatusMissed},
	{models.StatusActive, EventExpire, models.StatusMissed},
}

// Transition returns the state reached from `from` on ev, or
// common.ErrorInvalidTransition.
func Transition(from models.Status, ev Event) (models.Status, error) {
	for _, r := range Rules {
		if r.From == from && r.Event == ev {
			return r.To, nil
		}
	}
	return from, fmt.Errorf("%w: cannot %s a %s promise", common.ErrorInvalidTransition, ev, from)
}

// Expired reports whether p is ACTIVE with deadline_at <= now.
func Expired(p models.Promise, now int64) bool {
	return p.Status == models.StatusActive && p.DeadlineAt <= now
}

// TimeLeft is max(deadline_at - now, 0).
func TimeLeft(p models.Promise, now int64) int64 {
	if d := p.DeadlineAt - now; d > 0 {
		return d
	}
	return 0
}

// SweepResult is the outcome of evaluating a set of ACTIVE promises.
type SweepResult struct {
	// Expired holds the promises that must be persisted as MISSED, with
	// Status already set.
	Expired []models.Promise
	// Active holds the survivors ordered by deadline, then id.
	Active []models.ActivePromise
}

// Sweep splits active into the ones that expire at now and the ones that
// remain ACTIVE, annotating the latter with their time left.
func Sweep(active []models.Promise, now int64) SweepResult {
	var res SweepResult

	for _, p := range active {
		if Expired(p, now) {
			p.Status, _ = Transition(p.Status, EventExpire)
			res.Expired = append(res.Expired, p)
			continue
		}
		if p.Status != models.StatusActive {
			continue
		}
		left := TimeLeft(p, now)
		res.Active = append(res.Active, models.ActivePromise{
			Promise:         p,
			TimeLeft:        timex.FormatSpan(left),
			TimeLeftSeconds: left,
		})
	}

	sort.SliceStable(res.Active, func(i, j int) bool {
		return byDeadline(res.Active[i].Promise, res.Active[j].Promise)
	})

	return res
}

// SelectCurrentMissed returns the MISSED promise with the smallest deadline
// (ties broken by smallest id), or nil when there is none.
func SelectCurrentMissed(missed []models.Promise) *models.Promise {
	var current *models.Promise
	for i := range missed {
		p := &missed[i]
		if p.Status != models.StatusMissed {
			continue
		}
		if current == nil || byDeadline(*p, *current) {
			current = p
		}
	}
	if current == nil {
		return nil
	}
	out := *current
	return &out
}

func byDeadline(a, b models.Promise) bool {
	if a.DeadlineAt != b.DeadlineAt {
		return a.DeadlineAt < b.DeadlineAt
	}
	return a.ID < b.ID
}

// AccountabilityScore is round(100*completed/(completed+missed)). ok is false
// when both counts are zero.
func AccountabilityScore(completed, missed int64) (score int, ok bool) {
	total := completed + missed
	if total <= 0 {
		return 0, false
	}
	return int((200*completed + total) / (2 * total)), true
}
