package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTikTokTestClient(handler http.HandlerFunc) (*TikTokClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewTikTokClient("test-session")
	client.baseURL = server.URL
	return client, server
}

func TestSearchPagesUntilCount(t *testing.T) {
	page := 0
	client, server := newTikTokTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search/item/full/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if c, err := r.Cookie("sessionid"); err != nil || c.Value != "test-session" {
			t.Error("session cookie not sent")
		}
		page++
		switch page {
		case 1:
			fmt.Fprint(w, `{"item_list": [
				{"id": "v1", "desc": "first", "author": {"uniqueId": "alice"},
				 "video": {"playAddr": "http://cdn/v1", "cover": "http://cdn/v1.jpg"},
				 "stats": {"playCount": 100, "diggCount": 10}},
				{"id": "v2", "desc": "second", "author": {"uniqueId": "bob"},
				 "video": {}, "stats": {}}
			], "has_more": true, "cursor": 2}`)
		default:
			fmt.Fprint(w, `{"item_list": [
				{"id": "v3", "desc": "third", "author": {"uniqueId": "carol"},
				 "video": {}, "stats": {}}
			], "has_more": false, "cursor": 0}`)
		}
	})
	defer server.Close()

	items, err := client.Search(context.Background(), "cats", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page != 2 {
		t.Errorf("made %d requests, want 2", page)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	first := items[0]
	if first.ID != "v1" || first.Author.UniqueID != "alice" || first.Video.PlayAddr != "http://cdn/v1" {
		t.Errorf("first item mapped wrong: %+v", first)
	}
	if first.Stats["playCount"] != 100 {
		t.Errorf("stats not carried: %v", first.Stats)
	}
}

func TestSearchTruncatesOverfetch(t *testing.T) {
	client, server := newTikTokTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"item_list": [
			{"id": "v1"}, {"id": "v2"}, {"id": "v3"}
		], "has_more": false}`)
	})
	defer server.Close()

	items, err := client.Search(context.Background(), "cats", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestSearchStatusError(t *testing.T) {
	client, server := newTikTokTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := client.Search(context.Background(), "cats", 5)
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Search() error = %v, want HTTPStatusError", err)
	}
	if !statusErr.Transient() {
		t.Error("429 should classify as transient")
	}
}

func TestCommentsSkipsEmptyText(t *testing.T) {
	client, server := newTikTokTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/comment/list/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("aweme_id"); got != "v1" {
			t.Errorf("aweme_id = %q, want v1", got)
		}
		fmt.Fprint(w, `{"comments": [
			{"text": "love it"}, {"text": ""}, {"text": "so good"}
		], "has_more": 0, "cursor": 0}`)
	})
	defer server.Close()

	comments, err := client.Comments(context.Background(), "v1", 10)
	if err != nil {
		t.Fatalf("Comments() error = %v", err)
	}
	if len(comments) != 2 || comments[0] != "love it" || comments[1] != "so good" {
		t.Errorf("Comments() = %v", comments)
	}
}

func TestHTTPStatusErrorClassification(t *testing.T) {
	tests := []struct {
		code      int
		transient bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{403, false},
		{404, false},
	}

	for _, tt := range tests {
		err := &HTTPStatusError{Code: tt.code}
		if err.Transient() != tt.transient {
			t.Errorf("HTTP %d: Transient() = %v, want %v", tt.code, err.Transient(), tt.transient)
		}
	}
}
