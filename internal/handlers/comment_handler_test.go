package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestAddCommentAndList(t *testing.T) {
	e, _, _ := newTestServer()
	annToken := signupUser(t, e, "Ann", "a@x.com", "secret1")
	bobToken := signupUser(t, e, "Bob", "b@x.com", "secret2")

	postID := createPost(t, e, bobToken, "comment on me")

	rec := doJSON(t, e, http.MethodPost, "/api/post/comment/"+postID, `{"text":"nice post"}`, annToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	comments, ok := decodeBody(t, rec)["comments"].([]any)
	if !ok || len(comments) != 1 {
		t.Fatalf("expected 1 comment in response, got %v", comments)
	}
	first, _ := comments[0].(map[string]any)
	if first["text"] != "nice post" {
		t.Fatalf("unexpected comment text: %v", first["text"])
	}
	user, _ := first["user"].(map[string]any)
	if user["name"] != "Ann" {
		t.Fatalf("expected resolved comment author, got %v", user)
	}

	rec = doJSON(t, e, http.MethodGet, "/api/post/comments/"+postID, "", bobToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var listed []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("json parse: %v", err)
	}
	if len(listed) != 1 || listed[0]["text"] != "nice post" {
		t.Fatalf("unexpected comment list: %v", listed)
	}
}

func TestAddCommentValidation(t *testing.T) {
	e, _, _ := newTestServer()
	token := signupUser(t, e, "Ann", "a@x.com", "secret1")
	postID := createPost(t, e, token, "hello")

	rec := doJSON(t, e, http.MethodPost, "/api/post/comment/"+postID, `{"text":""}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", rec.Code)
	}

	long, _ := json.Marshal(map[string]string{"text": strings.Repeat("y", 501)})
	rec = doJSON(t, e, http.MethodPost, "/api/post/comment/"+postID, string(long), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized text, got %d", rec.Code)
	}
}

func TestAddCommentPostNotFound(t *testing.T) {
	e, _, _ := newTestServer()
	token := signupUser(t, e, "Ann", "a@x.com", "secret1")

	rec := doJSON(t, e, http.MethodPost, "/api/post/comment/64b2f0c8e4b0a1a2b3c4d5e6", `{"text":"hi"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCommentsAppendInOrder(t *testing.T) {
	e, _, _ := newTestServer()
	token := signupUser(t, e, "Ann", "a@x.com", "secret1")
	postID := createPost(t, e, token, "thread")

	doJSON(t, e, http.MethodPost, "/api/post/comment/"+postID, `{"text":"first"}`, token)
	doJSON(t, e, http.MethodPost, "/api/post/comment/"+postID, `{"text":"second"}`, token)

	rec := doJSON(t, e, http.MethodGet, "/api/post/comments/"+postID, "", token)
	var listed []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("json parse: %v", err)
	}
	if len(listed) != 2 || listed[0]["text"] != "first" || listed[1]["text"] != "second" {
		t.Fatalf("expected ordered comments, got %v", listed)
	}
}
