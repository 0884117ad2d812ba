package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/technova/careers-api/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#careers",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.SubmissionPayload{
		Kind:       notify.KindApplication,
		RecordID:   "123",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Topic:      "Senior Software Engineer",
		Attachment: "ada.pdf",
		Metadata:   map[string]string{"area": "engineering"},
	})

	if msg["username"] != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg["username"])
	}
	if msg["channel"] != "#careers" {
		t.Fatalf("expected channel to be set, got %v", msg["channel"])
	}

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if !containsAll(text, []string{
		"New job application", "123", "Ada Lovelace (ada@example.com)",
		"Position: Senior Software Engineer", "ada.pdf", "area: engineering",
	}) {
		t.Fatalf("message text missing fields: %s", text)
	}
}

func TestFormatMessageContact(t *testing.T) {
	client, err := NewClient(Config{WebhookURL: "https://hooks.slack.com/services/test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.SubmissionPayload{
		Kind:  notify.KindContact,
		Name:  "Ada",
		Topic: "Partnership <urgent> & more",
	})
	text, _ := msg["text"].(string)

	if !strings.Contains(text, "New contact message") {
		t.Fatalf("expected contact header, got: %s", text)
	}
	if !strings.Contains(text, "Subject: Partnership &lt;urgent&gt; &amp; more") {
		t.Fatalf("expected escaped subject, got: %s", text)
	}
	if strings.Contains(text, "Resume") {
		t.Fatalf("empty fields should be omitted: %s", text)
	}
}

func TestFormatRecordValue(t *testing.T) {
	tcs := []struct {
		name   string
		kind   string
		id     string
		prefix string
		want   string
	}{
		{
			name:   "application link",
			kind:   notify.KindApplication,
			id:     "abc",
			prefix: "https://admin.technova.example",
			want:   "<https://admin.technova.example/api/career/applications/abc|abc>",
		},
		{
			name:   "contact link",
			kind:   notify.KindContact,
			id:     "def",
			prefix: "https://admin.technova.example/",
			want:   "<https://admin.technova.example/api/contact/def|def>",
		},
		{
			name:   "invalid prefix",
			kind:   notify.KindContact,
			id:     "def",
			prefix: "not a url",
			want:   "def",
		},
		{
			name:   "empty id",
			prefix: "https://admin.technova.example",
			want:   "",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(Config{
				WebhookURL:      "https://hooks.slack.com/services/test",
				RecordURLPrefix: tc.prefix,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := client.formatRecordValue(tc.kind, tc.id); got != tc.want {
				t.Fatalf("formatRecordValue(%q,%q) = %q, want %q", tc.kind, tc.id, got, tc.want)
			}
		})
	}
}

func TestSendSubmissionPostsJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, Client: srv.Client()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.SendSubmission(context.Background(), notify.SubmissionPayload{Kind: notify.KindContact, Name: "Ada"})
	if err != nil {
		t.Fatalf("SendSubmission: %v", err)
	}
	if text, _ := got["text"].(string); !strings.Contains(text, "Ada") {
		t.Fatalf("webhook did not receive message text: %v", got)
	}
}

func TestSendSubmissionRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, RetryLimit: 1, Client: srv.Client()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.SendSubmission(context.Background(), notify.SubmissionPayload{Kind: notify.KindApplication})
	if err == nil || !strings.Contains(err.Error(), "invalid_payload") {
		t.Fatalf("expected webhook error, got %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("expected 2 attempts, got %d", n)
	}
}

func containsAll(text string, substrs []string) bool {
	for _, s := range substrs {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}
