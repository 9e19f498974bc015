package model

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Task is the canonical record sent to Motion. It lives for one request only.
type Task struct {
	Title    string   `json:"title"`
	Notes    string   `json:"notes"`
	Minutes  int      `json:"minutes"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	Due      string   `json:"due,omitempty"`
	Domain   string   `json:"domain"`
}

// TaskInput is a raw item from a request body or an AI extraction. Callers
// mix field aliases (title/name, notes/description) and send minutes either
// as a number or a numeric string, so minutes/duration stay untyped here and
// the service layer canonicalizes them.
type TaskInput struct {
	Title       string   `json:"title"`
	Name        string   `json:"name"`
	Notes       string   `json:"notes"`
	Description string   `json:"description"`
	Minutes     any      `json:"minutes"`
	Duration    any      `json:"duration"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	Labels      []string `json:"labels"`
	Due         string   `json:"due"`
	DueDate     string   `json:"dueDate"`
	Domain      string   `json:"domain"`
}

// ItemResult reports the outcome for one task of a batch. Index mirrors the
// position in the incoming array even when the item failed.
type ItemResult struct {
	Index   int    `json:"index"`
	Status  string `json:"status"`
	Task    *Task  `json:"task,omitempty"`
	Message string `json:"message,omitempty"`
}
