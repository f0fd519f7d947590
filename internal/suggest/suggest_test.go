package suggest

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/esmalte/internal/llm"
	"github.com/javiermolinar/esmalte/internal/salon"
	"github.com/javiermolinar/esmalte/internal/schedule"
	"github.com/javiermolinar/esmalte/internal/store"
)

// fakeClient replays scripted JSON responses and records the conversation.
type fakeClient struct {
	responses []string
	calls     int
	messages  [][]llm.Message
}

func (f *fakeClient) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = append(f.messages, messages)
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(content), result)
}

func newTestEngine(t *testing.T) *schedule.Engine {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "esmalte.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	now := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	e, err := schedule.New(context.Background(), st, schedule.WithNow(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	return e
}

func testRequest() salon.TimeRequest {
	return salon.TimeRequest{
		CustomerName:  "Aiko Watanabe",
		CustomerPhone: "090-1234-5678",
		Staff:         salon.Staff{ID: "1", Name: "Tanaka"},
		Service:       salon.Service{ID: "2", Name: "Design Nail", Duration: 90},
		PreferredDate: "2026-09-10",
		Message:       "Mornings work best for me",
	}
}

func TestSuggestFor_ValidFirstTry(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"suggestions": [{"date": "2026-09-10", "time": "10:00", "reason": "morning slot on the preferred day"}], "notes": ""}`,
	}}
	s := New(client, newTestEngine(t))

	result, err := s.SuggestFor(context.Background(), testRequest(), 2)
	if err != nil {
		t.Fatalf("suggesting: %v", err)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("unexpected validation errors: %v", result.ValidationErrors)
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0].Time != "10:00" {
		t.Errorf("unexpected suggestions: %+v", result.Suggestions)
	}
	if client.calls != 1 {
		t.Errorf("got %d LLM calls, want 1", client.calls)
	}
}

func TestSuggestFor_RetriesWithFeedback(t *testing.T) {
	// First answer proposes 22:00 for a 90 min service, which runs past
	// closing; the corrected answer is accepted.
	client := &fakeClient{responses: []string{
		`{"suggestions": [{"date": "2026-09-10", "time": "22:00", "reason": "late"}]}`,
		`{"suggestions": [{"date": "2026-09-10", "time": "11:00", "reason": "fits before lunch"}]}`,
	}}
	s := New(client, newTestEngine(t))

	result, err := s.SuggestFor(context.Background(), testRequest(), 2)
	if err != nil {
		t.Fatalf("suggesting: %v", err)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("unexpected validation errors: %v", result.ValidationErrors)
	}
	if result.Suggestions[0].Time != "11:00" {
		t.Errorf("got %s, want the corrected 11:00", result.Suggestions[0].Time)
	}
	if client.calls != 2 {
		t.Fatalf("got %d LLM calls, want 2", client.calls)
	}

	// The retry conversation must carry the error feedback.
	second := client.messages[1]
	last := second[len(second)-1]
	if last.Role != "user" || !strings.Contains(last.Content, "cannot fit a 90 min service") {
		t.Errorf("expected validation feedback in retry, got %q", last.Content)
	}
}

func TestSuggestFor_ExhaustsRetries(t *testing.T) {
	bad := `{"suggestions": [{"date": "not-a-date", "time": "10:00", "reason": "x"}]}`
	client := &fakeClient{responses: []string{bad, bad}}
	s := New(client, newTestEngine(t))

	result, err := s.SuggestFor(context.Background(), testRequest(), 1)
	if err != nil {
		t.Fatalf("suggesting: %v", err)
	}
	if len(result.ValidationErrors) == 0 {
		t.Fatal("expected validation errors after exhausting retries")
	}
	if client.calls != 2 {
		t.Errorf("got %d LLM calls, want 2", client.calls)
	}
}

func TestSuggestFor_EmptySuggestionsRejected(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"suggestions": []}`,
		`{"suggestions": [{"date": "2026-09-08", "time": "14:00", "reason": "open afternoon"}]}`,
	}}
	s := New(client, newTestEngine(t))

	result, err := s.SuggestFor(context.Background(), testRequest(), 2)
	if err != nil {
		t.Fatalf("suggesting: %v", err)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("unexpected validation errors: %v", result.ValidationErrors)
	}
	if client.calls != 2 {
		t.Errorf("got %d LLM calls, want 2", client.calls)
	}
}

func TestBuildPrompt_IncludesAvailability(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Book(context.Background(), "2026-09-07", "10:00", salon.Customer{
		Name:    "Hana Ito",
		Phone:   "080-0000-1111",
		Service: salon.Service{ID: "3", Name: "Gel Nail", Duration: 120, StaffID: "2"},
		Staff:   salon.Staff{ID: "2", Name: "Sato"},
	}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	s := New(&fakeClient{}, engine)
	req := testRequest()
	req.PreferredDate = ""
	prompt := s.buildPrompt(req, 90)

	if !strings.Contains(prompt, "Design Nail (90 min)") {
		t.Errorf("prompt missing service line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2026-09-07:") {
		t.Errorf("prompt missing availability for the first day:\n%s", prompt)
	}
	// 10:00 and 11:00 are taken by the 120 min booking, and a 90 min
	// service cannot start at 22:00.
	first := firstLineFor(prompt, "2026-09-07:")
	for _, taken := range []string{"10:00", "11:00", "22:00"} {
		if strings.Contains(first, taken) {
			t.Errorf("day line offers unbookable start %s: %s", taken, first)
		}
	}
	if !strings.Contains(first, "12:00") {
		t.Errorf("day line should offer 12:00: %s", first)
	}
}

func firstLineFor(s, prefix string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}
