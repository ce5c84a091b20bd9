package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
)

const (
	tasksCollection = "tasks"
	listPageSize    = 500
	dateLayout      = "2006-01-02"
)

// HTTPStore talks to a remote record-store collection API
// (GET /api/collections/{name}/records, PATCH .../records/{id}).
type HTTPStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPStore creates a client for the record store at baseURL. token, if
// non-empty, is sent as a bearer credential.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// taskRecord is the wire shape of a task in the collection API. Dates are
// plain calendar-day strings; empty means unscheduled.
type taskRecord struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Milestone    bool     `json:"milestone"`
	Progress     int      `json:"progress"`
	Status       string   `json:"status"`
	Dependencies []string `json:"dependencies"`
	Category     string   `json:"category,omitempty"`
	Assignee     string   `json:"assignee,omitempty"`
	Priority     int      `json:"priority,omitempty"`
	Created      string   `json:"created,omitempty"`
	Updated      string   `json:"updated,omitempty"`
}

type listResponse struct {
	Items []taskRecord `json:"items"`
}

func (s *HTTPStore) ListTasks(ctx context.Context, filter Filter) ([]domain.Task, error) {
	const op = "store.list_tasks"

	q := url.Values{}
	q.Set("perPage", fmt.Sprint(listPageSize))
	q.Set("sort", "startDate")
	if filter.Category != "" {
		q.Set("filter", fmt.Sprintf("(category='%s')", filter.Category))
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records?%s", s.baseURL, tasksCollection, q.Encode())

	body, err := s.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewError(KindUnknown, op, fmt.Errorf("decoding list response: %w", err))
	}

	tasks := make([]domain.Task, 0, len(resp.Items))
	for _, rec := range resp.Items {
		tasks = append(tasks, recordToTask(rec))
	}
	return tasks, nil
}

func (s *HTTPStore) UpdateTask(ctx context.Context, id string, fields TaskFields) (*domain.Task, error) {
	const op = "store.update_task"

	payload := make(map[string]any)
	if fields.Title != nil {
		payload["title"] = *fields.Title
	}
	if fields.Status != nil {
		payload["status"] = string(*fields.Status)
	}
	if fields.Progress != nil {
		payload["progress"] = domain.ClampProgress(*fields.Progress)
	}
	if fields.StartDate != nil {
		payload["startDate"] = fields.StartDate.Format(dateLayout)
	}
	if fields.EndDate != nil {
		payload["endDate"] = fields.EndDate.Format(dateLayout)
	}
	if fields.Dependencies != nil {
		payload["dependencies"] = *fields.Dependencies
	}
	if len(payload) == 0 {
		return nil, NewError(KindValidation, op, fmt.Errorf("empty update for task %s", id))
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, NewError(KindUnknown, op, err)
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", s.baseURL, tasksCollection, url.PathEscape(id))

	body, err := s.do(ctx, op, http.MethodPatch, endpoint, raw)
	if err != nil {
		return nil, err
	}

	var rec taskRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		// A 2xx with an undecodable body still counts as success; callers
		// refetch rather than trust the returned record anyway.
		return nil, nil
	}
	t := recordToTask(rec)
	return &t, nil
}

func (s *HTTPStore) CreateTask(ctx context.Context, t *domain.Task) error {
	const op = "store.create_task"

	rec := taskToRecord(t)
	raw, err := json.Marshal(rec)
	if err != nil {
		return NewError(KindUnknown, op, err)
	}
	endpoint := fmt.Sprintf("%s/api/collections/%s/records", s.baseURL, tasksCollection)
	_, err = s.do(ctx, op, http.MethodPost, endpoint, raw)
	return err
}

// do issues one request and classifies every failure path.
func (s *HTTPStore) do(ctx context.Context, op, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, NewError(KindUnknown, op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, NewError(Classify(err), op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(Classify(err), op, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewError(KindAuthorization, op, httpError(resp.StatusCode, data))
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewError(KindNotFound, op, httpError(resp.StatusCode, data))
	case resp.StatusCode == http.StatusBadRequest:
		return nil, NewError(KindValidation, op, httpError(resp.StatusCode, data))
	default:
		return nil, NewError(KindUnknown, op, httpError(resp.StatusCode, data))
	}
}

func httpError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		return fmt.Errorf("server returned %d", status)
	}
	return fmt.Errorf("server returned %d: %s", status, msg)
}

func recordToTask(rec taskRecord) domain.Task {
	t := domain.Task{
		ID:           rec.ID,
		Title:        rec.Title,
		Milestone:    rec.Milestone,
		Progress:     domain.ClampProgress(rec.Progress),
		Status:       domain.NormalizeStatus(rec.Status),
		Dependencies: rec.Dependencies,
		Category:     rec.Category,
		Assignee:     rec.Assignee,
		Priority:     rec.Priority,
	}
	t.StartDate = parseDate(rec.StartDate)
	t.EndDate = parseDate(rec.EndDate)
	if ts := parseTimestamp(rec.Created); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := parseTimestamp(rec.Updated); ts != nil {
		t.UpdatedAt = *ts
	}
	return t
}

func taskToRecord(t *domain.Task) taskRecord {
	rec := taskRecord{
		ID:           t.ID,
		Title:        t.Title,
		Milestone:    t.Milestone,
		Progress:     domain.ClampProgress(t.Progress),
		Status:       string(t.Status),
		Dependencies: t.Dependencies,
		Category:     t.Category,
		Assignee:     t.Assignee,
		Priority:     t.Priority,
	}
	if t.StartDate != nil {
		rec.StartDate = t.StartDate.Format(dateLayout)
	}
	if t.EndDate != nil {
		rec.EndDate = t.EndDate.Format(dateLayout)
	}
	return rec
}

// parseDate tolerates empty and malformed values: a record with a bad date
// is an unscheduled record, not an error.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	// Some stores serialize dates with a time component.
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	t = domain.DateOnly(t)
	return &t
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05.999Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
