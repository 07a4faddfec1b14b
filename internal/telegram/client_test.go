package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/slog"
)

type recordedCall struct {
	path string
	body map[string]interface{}
}

func newFakeAPI(t *testing.T, status int, response string) (*httptest.Server, *[]recordedCall) {
	t.Helper()

	var calls []recordedCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read request body: %v", err)
		}

		var body map[string]interface{}
		if err = json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}

		calls = append(calls, recordedCall{path: r.URL.Path, body: body})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))

	t.Cleanup(srv.Close)

	return srv, &calls
}

func newTestClient(apiURL string) *Client {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient(log, apiURL, "test-token", 5*time.Second)
}

func TestSendMessage(t *testing.T) {
	srv, calls := newFakeAPI(t, http.StatusOK, `{"ok":true,"result":{"message_id":5}}`)
	client := newTestClient(srv.URL)

	payload, err := client.SendMessage(context.Background(), 42, "hello", ParseModeHTML, DiceKeyboard("🎲"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(payload), `"message_id":5`) {
		t.Errorf("payload should be the raw API response, got %s", payload)
	}

	if len(*calls) != 1 {
		t.Fatalf("expected 1 API call, got %d", len(*calls))
	}

	call := (*calls)[0]
	if call.path != "/bottest-token/sendMessage" {
		t.Errorf("path = %q, want /bottest-token/sendMessage", call.path)
	}
	if call.body["chat_id"].(float64) != 42 {
		t.Errorf("chat_id = %v, want 42", call.body["chat_id"])
	}
	if call.body["parse_mode"] != "HTML" {
		t.Errorf("parse_mode = %v, want HTML", call.body["parse_mode"])
	}
	if call.body["reply_markup"] == nil {
		t.Error("reply_markup missing")
	}
}

func TestSendDice(t *testing.T) {
	srv, calls := newFakeAPI(t, http.StatusOK, `{"ok":true,"result":{"dice":{"value":3}}}`)
	client := newTestClient(srv.URL)

	if _, err := client.SendDice(context.Background(), 42, DiceEmoji); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := (*calls)[0]
	if call.path != "/bottest-token/sendDice" {
		t.Errorf("path = %q, want /bottest-token/sendDice", call.path)
	}
	if call.body["emoji"] != DiceEmoji {
		t.Errorf("emoji = %v, want %q", call.body["emoji"], DiceEmoji)
	}
}

func TestAPIErrorIsReturned(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusBadRequest, `{"ok":false,"description":"Bad Request: chat not found"}`)
	client := newTestClient(srv.URL)

	_, err := client.SendMessage(context.Background(), 42, "hello", "", nil)
	if err == nil {
		t.Fatal("expected an error for an ok:false API response")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error should carry the API description, got %v", err)
	}
}

func TestNetworkErrorIsReturned(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	if _, err := client.SendDice(context.Background(), 42, DiceEmoji); err == nil {
		t.Fatal("expected a transport error")
	}
}
