package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MITHU9/forum-hub-backend/internal/votes"
)

// The request-shape failures below never reach the database, so a ledger
// over a nil handle is fine here; storage behavior lives in the votes
// package integration tests.
func newVoteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewVoteHandler(votes.NewLedger(nil))
	r.POST("/post-upvote/:postId", h.UpvotePost)
	r.POST("/post-downvote/:postId", h.DownvotePost)
	return r
}

func TestVoteEndpointsRejectBadRequests(t *testing.T) {
	r := newVoteRouter()

	cases := []struct {
		name string
		path string
		body string
	}{
		{"non-numeric post id", "/post-upvote/abc", `{"userEmail":"a@example.com"}`},
		{"missing email", "/post-upvote/1", `{}`},
		{"empty email", "/post-downvote/1", `{"userEmail":""}`},
		{"blank email", "/post-downvote/1", `{"userEmail":"   "}`},
		{"malformed json", "/post-upvote/1", `{"userEmail":`},
		{"zero post id", "/post-upvote/0", `{"userEmail":"a@example.com"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"message"`) {
				t.Fatalf("error body must use the message key, got %s", w.Body.String())
			}
		})
	}
}
