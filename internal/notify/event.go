package notify

import (
	"encoding/json"
	"fmt"
	"os"
)

// eventPayload is the slice of the CI event document we need: the head
// commit of the pull request that triggered the run.
type eventPayload struct {
	PullRequest struct {
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

// HeadSHA reads the CI event payload at path and returns the pull
// request head commit SHA.
func HeadSHA(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("event payload path is not set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read event payload: %w", err)
	}

	var ev eventPayload
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}
	if ev.PullRequest.Head.SHA == "" {
		return "", fmt.Errorf("event payload %s has no pull_request.head.sha", path)
	}
	return ev.PullRequest.Head.SHA, nil
}
