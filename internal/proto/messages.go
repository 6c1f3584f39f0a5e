// Package proto is the wire contract of promisekeeper.v1.PromiseService.
//
// Requests and responses travel as google.protobuf.Struct values; the Go
// types below describe their fields and are converted with Encode/Decode.
// The HTTP JSON API uses the same types, so both transports expose one shape.
package proto

// Promise is a promise record as seen by clients.
type Promise struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	PromiseType     string  `json:"promise_type"`
	Content         string  `json:"content"`
	CreatedAt       int64   `json:"created_at"`
	DeadlineAt      int64   `json:"deadline_at"`
	Status          string  `json:"status"`
	Fingerprint     string  `json:"fingerprint"`
	Participants    *string `json:"participants,omitempty"`
	TimeLeft        string  `json:"time_left,omitempty"`
	TimeLeftSeconds int64   `json:"time_left_seconds,omitempty"`
}

type Empty struct{}

type IDRequest struct {
	ID int64 `json:"id"`
}

type DashboardResponse struct {
	Now           int64     `json:"now"`
	Active        []Promise `json:"active"`
	CurrentMissed *Promise  `json:"current_missed,omitempty"`
	Score         *int      `json:"accountability_score,omitempty"`
}

type CreatePromiseRequest struct {
	Name         string  `json:"name"`
	PromiseType  string  `json:"promise_type"`
	Content      string  `json:"content"`
	Deadline     string  `json:"deadline"`
	Participants *string `json:"participants,omitempty"`
}

type FormatPromiseRequest struct {
	Text string `json:"text"`
}

type FormatPromiseResponse struct {
	Raw         string `json:"raw"`
	Error       bool   `json:"error"`
	Name        string `json:"name"`
	PromiseType string `json:"promise_type"`
	Content     string `json:"content"`
}

type SolutionsRequest struct {
	ID       int64  `json:"id"`
	Reason   string `json:"reason"`
	Category string `json:"category"`
}

type Solution struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type SolutionsResponse struct {
	Promise  Promise    `json:"promise"`
	Category string     `json:"category"`
	Raw      string     `json:"raw"`
	Error    bool       `json:"error"`
	Cached   bool       `json:"cached"`
	Options  []Solution `json:"options"`
}

type DraftRevisionRequest struct {
	ID           int64  `json:"id"`
	Reason       string `json:"reason"`
	Category     string `json:"category"`
	Label        string `json:"label"`
	SolutionText string `json:"solution_text"`
}

type DraftRevisionResponse struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Deadline string `json:"deadline"`
	Raw      string `json:"raw"`
	Error    bool   `json:"error"`
}

type ApplyReframeRequest struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Deadline string `json:"deadline"`
}

type Category struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}
