package anki

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type captured struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  struct {
		Note struct {
			DeckName  string            `json:"deckName"`
			ModelName string            `json:"modelName"`
			Fields    map[string]string `json:"fields"`
		} `json:"note"`
	} `json:"params"`
}

func newTestServer(t *testing.T, reply string, status int) (*httptest.Server, *[]captured) {
	t.Helper()
	var got []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var c captured
		if err := json.Unmarshal(body, &c); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		got = append(got, c)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestAddNote(t *testing.T) {
	srv, got := newTestServer(t, `{"result":1496198395707,"error":null}`, http.StatusOK)
	c := NewClient(srv.URL)

	err := c.AddNote(context.Background(), Note{
		Deck:     "Othello",
		Model:    "Othello",
		Sequence: "C4C3",
		Solution: "D3",
	})
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("requests = %d, want 1", len(*got))
	}
	req := (*got)[0]
	if req.Action != "addNote" || req.Version != 6 {
		t.Fatalf("action/version = %s/%d", req.Action, req.Version)
	}
	if req.Params.Note.DeckName != "Othello" || req.Params.Note.ModelName != "Othello" {
		t.Fatalf("deck/model = %s/%s", req.Params.Note.DeckName, req.Params.Note.ModelName)
	}
	if req.Params.Note.Fields["Sequence"] != "C4C3" || req.Params.Note.Fields["Solution"] != "D3" {
		t.Fatalf("fields = %v", req.Params.Note.Fields)
	}
}

func TestAddNoteServiceError(t *testing.T) {
	srv, _ := newTestServer(t, `{"result":null,"error":"cannot create note because it is a duplicate"}`, http.StatusOK)
	c := NewClient(srv.URL)
	if err := c.AddNote(context.Background(), Note{Deck: "d", Model: "m"}); err == nil {
		t.Fatalf("expected error from AnkiConnect error field")
	}
}

func TestAddNoteHTTPFailure(t *testing.T) {
	srv, _ := newTestServer(t, "boom", http.StatusInternalServerError)
	c := NewClient(srv.URL)
	if err := c.AddNote(context.Background(), Note{}); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestPing(t *testing.T) {
	srv, got := newTestServer(t, `{"result":6,"error":null}`, http.StatusOK)
	c := NewClient(srv.URL)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if len(*got) != 1 || (*got)[0].Action != "version" {
		t.Fatalf("expected a single version request, got %v", *got)
	}
}

func TestPingUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listens here
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for unreachable service")
	}
}
