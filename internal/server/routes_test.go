package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func postEntry(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/entries", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

// seedEntry inserts a row with a controlled timestamp, bypassing the
// server-assigned clock.
func seedEntry(t *testing.T, srv *Server, id string, daysAgo int) {
	t.Helper()
	createdAt := time.Now().AddDate(0, 0, -daysAgo).UnixMilli()
	_, err := srv.db.Exec(
		"INSERT INTO entries (id, text, effort, tags, created_at) VALUES (?, 'seeded', 3, '[]', ?)",
		id, createdAt,
	)
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestCreateEntry(t *testing.T) {
	srv := testServer(t)

	w := postEntry(t, srv, `{"text":"learned chi middleware","effort":4,"tags":["go","http"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		ID        string   `json:"id"`
		Text      string   `json:"text"`
		Effort    int      `json:"effort"`
		Tags      []string `json:"tags"`
		CreatedAt int64    `json:"created_at"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ID == "" {
		t.Error("id is empty")
	}
	if resp.Text != "learned chi middleware" {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Effort != 4 {
		t.Errorf("effort = %d, want 4", resp.Effort)
	}
	if len(resp.Tags) != 2 || resp.Tags[0] != "go" || resp.Tags[1] != "http" {
		t.Errorf("tags = %v, want [go http]", resp.Tags)
	}
	if resp.CreatedAt == 0 {
		t.Error("created_at = 0")
	}
}

func TestCreateEntryOmittedTags(t *testing.T) {
	srv := testServer(t)

	w := postEntry(t, srv, `{"text":"no tags today","effort":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	// tags must decode to an empty array, never null
	if !strings.Contains(w.Body.String(), `"tags":[]`) {
		t.Errorf("body = %s, want tags as empty array", w.Body.String())
	}
}

func TestCreateEntryValidation(t *testing.T) {
	srv := testServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty text", `{"text":"","effort":3}`},
		{"whitespace text", `{"text":"   ","effort":3}`},
		{"text too long", fmt.Sprintf(`{"text":%q,"effort":3}`, strings.Repeat("x", 501))},
		{"missing effort", `{"text":"ok"}`},
		{"effort out of range", `{"text":"ok","effort":7}`},
		{"empty tag", `{"text":"ok","effort":3,"tags":[""]}`},
		{"invalid json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postEntry(t, srv, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}

	// None of the rejected requests wrote anything
	req := httptest.NewRequest("GET", "/api/entries", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 0 {
		t.Errorf("count = %d after rejected creates, want 0", resp.Count)
	}
}

func TestGetEntry(t *testing.T) {
	srv := testServer(t)

	w := postEntry(t, srv, `{"text":"t","effort":2,"tags":["a","b"]}`)
	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	req := httptest.NewRequest("GET", "/api/entries/"+created.ID, nil)
	w2 := httptest.NewRecorder()
	srv.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w2.Code, w2.Body.String())
	}
	var got struct {
		Tags []string `json:"tags"`
	}
	json.Unmarshal(w2.Body.Bytes(), &got)
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("tags = %v, want [a b]", got.Tags)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/entries/nope", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListEntriesPaginated(t *testing.T) {
	srv := testServer(t)
	seedEntry(t, srv, "d5", 5)
	seedEntry(t, srv, "d2", 2)
	seedEntry(t, srv, "d1", 1)
	seedEntry(t, srv, "d0", 0)

	type listResp struct {
		Entries []struct {
			ID string `json:"id"`
		} `json:"entries"`
		NextCursor string `json:"next_cursor"`
	}

	req := httptest.NewRequest("GET", "/api/entries?limit=2", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var page1 listResp
	json.Unmarshal(w.Body.Bytes(), &page1)
	if len(page1.Entries) != 2 || page1.Entries[0].ID != "d0" || page1.Entries[1].ID != "d1" {
		t.Fatalf("page 1 = %+v, want [d0 d1]", page1.Entries)
	}
	if page1.NextCursor == "" {
		t.Fatal("next_cursor empty, want continuation")
	}

	req = httptest.NewRequest("GET", "/api/entries?limit=2&cursor="+page1.NextCursor, nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	var page2 listResp
	json.Unmarshal(w.Body.Bytes(), &page2)
	if len(page2.Entries) != 2 || page2.Entries[0].ID != "d2" || page2.Entries[1].ID != "d5" {
		t.Fatalf("page 2 = %+v, want [d2 d5]", page2.Entries)
	}
	if page2.NextCursor != "" {
		t.Errorf("next_cursor = %q after last page, want empty", page2.NextCursor)
	}
}

func TestListEntriesBadCursor(t *testing.T) {
	srv := testServer(t)
	seedEntry(t, srv, "d0", 0)

	req := httptest.NewRequest("GET", "/api/entries?cursor=bogus", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestStreakEndpoint(t *testing.T) {
	srv := testServer(t)
	seedEntry(t, srv, "d5", 5)
	seedEntry(t, srv, "d2", 2)
	seedEntry(t, srv, "d1", 1)
	seedEntry(t, srv, "d0", 0)

	req := httptest.NewRequest("GET", "/api/streak", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Streak int `json:"streak"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Streak != 3 {
		t.Errorf("streak = %d, want 3", resp.Streak)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t)
	postEntry(t, srv, `{"text":"wired up cobra commands","effort":3}`)
	postEntry(t, srv, `{"text":"rest day","effort":1}`)

	req := httptest.NewRequest("GET", "/api/entries/search?q=cobra", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}

	// Missing q is a client error
	req = httptest.NewRequest("GET", "/api/entries/search", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
