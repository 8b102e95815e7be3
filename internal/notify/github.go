package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// acceptPreview selects the comfort-fade comment representation, which
// is what allows attaching a commit_id to an issue comment.
const acceptPreview = "application/vnd.github.comfort-fade-preview+json"

// CommentRequest describes one pull request comment to post.
type CommentRequest struct {
	// Repo is the "owner/name" slug of the repository.
	Repo string
	// Number is the pull request number, as a string because it comes
	// straight from the CI invocation.
	Number string
	// Body is the comment text.
	Body string
	// EventPath is the path of the CI event payload JSON; the head
	// commit SHA is read from it.
	EventPath string
}

type commentPayload struct {
	Body     string `json:"body"`
	CommitID string `json:"commit_id"`
}

// Commenter posts comments on pull requests.
type Commenter struct {
	client *github.Client
}

// NewCommenter builds a Commenter authenticated with token. apiURL
// overrides the GitHub API base URL when non-empty.
func NewCommenter(ctx context.Context, token, apiURL string) (*Commenter, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}

	// The comment endpoint is authenticated with the legacy
	// "Token <token>" scheme, not "Bearer".
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Token"})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if apiURL != "" {
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}
	return &Commenter{client: client}, nil
}

// PostComment posts req.Body as a comment on the pull request,
// attaching the head commit SHA from the event payload. A non-success
// HTTP status is returned as an error.
func (c *Commenter) PostComment(ctx context.Context, req CommentRequest) error {
	if req.Repo == "" || !strings.Contains(req.Repo, "/") {
		return fmt.Errorf("repository slug %q must be owner/name", req.Repo)
	}

	sha, err := HeadSHA(req.EventPath)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("repos/%s/issues/%s/comments", req.Repo, req.Number)
	httpReq, err := c.client.NewRequest(http.MethodPost, u, commentPayload{
		Body:     req.Body,
		CommitID: sha,
	})
	if err != nil {
		return fmt.Errorf("failed to build comment request: %w", err)
	}
	httpReq.Header.Set("Accept", acceptPreview)

	if _, err := c.client.Do(ctx, httpReq, nil); err != nil {
		return fmt.Errorf("failed to post PR comment: %w", err)
	}
	return nil
}
