package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanmeadows/gh-pr-comments/internal/resolve"
)

// newTestClient creates a Client wired to a test HTTP server.
func newTestClient(t *testing.T, handler http.Handler, userAgent string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		APIURL:    server.URL + "/",
		UserAgent: userAgent,
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func mustRef(t *testing.T, token string) resolve.Reference {
	t.Helper()
	ref, err := resolve.Resolve(token, "", nil)
	require.NoError(t, err)
	return ref
}

func TestGetPullRequest(t *testing.T) {
	var userAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		pr := gh.PullRequest{
			Number:  gh.Ptr(42),
			Title:   gh.Ptr("Fix bug"),
			State:   gh.Ptr("open"),
			HTMLURL: gh.Ptr("https://github.com/testowner/testrepo/pull/42"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pr)
	})

	client := newTestClient(t, mux, "")

	pr, err := client.GetPullRequest(t.Context(), mustRef(t, "testowner/testrepo/pull/42"))
	require.NoError(t, err)

	assert.Equal(t, "Fix bug", pr.Title)
	assert.Equal(t, "https://github.com/testowner/testrepo/pull/42", pr.URL)
	assert.Equal(t, DefaultUserAgent, userAgent)
}

func TestGetPullRequest_CustomUserAgent(t *testing.T) {
	var userAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/1", func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(gh.PullRequest{Number: gh.Ptr(1)})
	})

	client := newTestClient(t, mux, "review-bot/1.0")
	_, err := client.GetPullRequest(t.Context(), mustRef(t, "testowner/testrepo/pull/1"))
	require.NoError(t, err)
	assert.Equal(t, "review-bot/1.0", userAgent)
}

func TestGetPullRequest_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	client := newTestClient(t, mux, "")
	_, err := client.GetPullRequest(t.Context(), mustRef(t, "testowner/testrepo/pull/9"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching pull request testowner/testrepo#9")

	var ghErr *gh.ErrorResponse
	require.ErrorAs(t, err, &ghErr)
	assert.Equal(t, http.StatusNotFound, ghErr.Response.StatusCode)
}

func TestGetPullRequest_MalformedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title": `)
	})

	client := newTestClient(t, mux, "")
	_, err := client.GetPullRequest(t.Context(), mustRef(t, "testowner/testrepo/pull/3"))
	assert.Error(t, err)
}

func TestListReviewComments(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/5/comments", func(w http.ResponseWriter, r *http.Request) {
		comments := []*gh.PullRequestComment{
			{
				ID:        gh.Ptr(int64(301)),
				Body:      gh.Ptr("LGTM"),
				Path:      gh.Ptr("src/lib.rs"),
				Line:      gh.Ptr(10),
				DiffHunk:  gh.Ptr("@@ -1,3 +1,4 @@\n fn main() {"),
				HTMLURL:   gh.Ptr("https://github.com/testowner/testrepo/pull/5#discussion_r301"),
				CreatedAt: &gh.Timestamp{Time: created},
				User:      &gh.User{Login: gh.Ptr("alice")},
			},
			{
				ID:   gh.Ptr(int64(302)),
				Body: gh.Ptr("Outdated note"),
				Path: gh.Ptr("README.md"),
				User: &gh.User{Login: gh.Ptr("bob")},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(comments)
	})

	client := newTestClient(t, mux, "")

	comments, err := client.ListReviewComments(t.Context(), mustRef(t, "testowner/testrepo/pull/5"))
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, ReviewComment{
		Author:    "alice",
		Body:      "LGTM",
		CreatedAt: "2024-03-01T12:30:00Z",
		URL:       "https://github.com/testowner/testrepo/pull/5#discussion_r301",
		DiffHunk:  "@@ -1,3 +1,4 @@\n fn main() {",
		FilePath:  "src/lib.rs",
		Line:      10,
	}, comments[0])
	assert.True(t, comments[0].HasLine())

	assert.Equal(t, "bob", comments[1].Author)
	assert.Equal(t, 0, comments[1].Line)
	assert.False(t, comments[1].HasLine())
	assert.Empty(t, comments[1].CreatedAt)
}

func TestListReviewComments_Empty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/6/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client := newTestClient(t, mux, "")
	comments, err := client.ListReviewComments(t.Context(), mustRef(t, "testowner/testrepo/pull/6"))
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestListReviewComments_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/testowner/testrepo/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, mux, "")
	_, err := client.ListReviewComments(t.Context(), mustRef(t, "testowner/testrepo/pull/7"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching review comments for testowner/testrepo#7")
}

func TestNewClient_InvalidAPIURL(t *testing.T) {
	_, err := NewClient(Options{APIURL: "://bad"})
	assert.Error(t, err)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client, err := NewClient(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, client.client.Client().Timeout)

	client, err = NewClient(Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, client.client.Client().Timeout)
}

func TestMapComment_CreatedAtNormalizedToUTC(t *testing.T) {
	plusTwo := time.FixedZone("", 2*60*60)
	comment := mapComment(&gh.PullRequestComment{
		CreatedAt: &gh.Timestamp{Time: time.Date(2024, 3, 1, 14, 30, 0, 250_000_000, plusTwo)},
	})
	assert.Equal(t, "2024-03-01T12:30:00Z", comment.CreatedAt)
}
