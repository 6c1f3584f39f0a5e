package models

import "strings"

// Status is the lifecycle state of a promise.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusMissed    Status = "MISSED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusMissed:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusMissed
}

// PromiseType names who the promise is made to.
type PromiseType string

const (
	PromiseTypeSelf   PromiseType = "self"
	PromiseTypeOthers PromiseType = "others"
	PromiseTypeWorld  PromiseType = "world"
)

// NormalizePromiseType maps free input onto a PromiseType. Unknown values
// become PromiseTypeSelf; "other" is accepted for PromiseTypeOthers.
func NormalizePromiseType(s string) PromiseType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "others", "other":
		return PromiseTypeOthers
	case "world":
		return PromiseTypeWorld
	default:
		return PromiseTypeSelf
	}
}

// Promise is a tracked commitment. CreatedAt and DeadlineAt are unix seconds.
type Promise struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	PromiseType  PromiseType `json:"promise_type"`
	Content      string      `json:"content"`
	CreatedAt    int64       `json:"created_at"`
	DeadlineAt   int64       `json:"deadline_at"`
	Status       Status      `json:"status"`
	Fingerprint  string      `json:"fingerprint"`
	Participants *string     `json:"participants,omitempty"`
}

// ActivePromise is an ACTIVE promise together with its rendered time left.
type ActivePromise struct {
	Promise
	TimeLeft        string `json:"time_left"`
	TimeLeftSeconds int64  `json:"time_left_seconds"`
}
