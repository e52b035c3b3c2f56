package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchPosts_PreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("expected /posts, got %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id":1,"title":"first","body":"aaa"},
			{"id":2,"title":"second","body":"bbb"},
			{"id":3,"title":"third","body":"ccc"}
		]`))
	}))
	defer server.Close()

	client := testClient("", server.URL)
	posts, err := client.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i, want := range []int{1, 2, 3} {
		if posts[i].ID != want {
			t.Errorf("posts[%d].ID = %d, want %d", i, posts[i].ID, want)
		}
	}
}

func TestFetchPosts_NoRetryOn401(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient("", server.URL)
	if _, err := client.FetchPosts(context.Background()); err == nil {
		t.Error("expected error on 401")
	}
	if attempts != 1 {
		t.Errorf("posts feed has no retry policy, got %d attempts", attempts)
	}
}

func TestFetchPosts_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient("", server.URL)
	if _, err := client.FetchPosts(context.Background()); err == nil {
		t.Error("expected error on 500")
	}
}

func TestFetchPosts_HonorsPostsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(Config{
		PostsBaseURL: server.URL,
		PostsTimeout: 20 * time.Millisecond,
	})
	if _, err := client.FetchPosts(context.Background()); err == nil {
		t.Error("expected a timeout error from the posts client")
	}
}

func TestPostsTimeout_DoesNotApplyToAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"token":"abc123"}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		AuthBaseURL:  server.URL,
		Retry:        DefaultRetryPolicy(),
		PostsTimeout: 20 * time.Millisecond,
	})
	result, err := client.Login(context.Background(), "eve.holt@reqres.in", "pistol")
	if err != nil {
		t.Fatalf("auth request must not inherit the posts timeout: %v", err)
	}
	if result.Token != "abc123" {
		t.Errorf("token = %q, want abc123", result.Token)
	}
}

func TestFetchPosts_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := testClient("", server.URL)
	if _, err := client.FetchPosts(context.Background()); err == nil {
		t.Error("expected a transport error")
	}
}
