package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v69/github"
)

// CommentResult reports whether the review comment was created fresh or an
// existing marker-keyed comment was updated.
type CommentResult struct {
	Action    string `json:"action"` // created / updated
	CommentID int64  `json:"commentId"`
}

// UpsertReviewComment posts the review report on the pull request. An
// existing comment carrying the marker is updated in place so repeated
// reviews never stack comments.
func (c *Client) UpsertReviewComment(ctx context.Context, prNumber int, body string) (*CommentResult, error) {
	if !strings.Contains(body, c.marker) {
		body = c.marker + "\n" + body
	}

	comments, _, err := c.api.Issues.ListComments(ctx, c.owner, c.repo, prNumber, nil)
	if err != nil {
		return nil, err
	}

	for _, existing := range comments {
		if !strings.Contains(existing.GetBody(), c.marker) {
			continue
		}
		updated, _, err := c.api.Issues.EditComment(ctx, c.owner, c.repo, existing.GetID(),
			&gh.IssueComment{Body: gh.Ptr(body)})
		if err != nil {
			return nil, err
		}
		return &CommentResult{Action: "updated", CommentID: updated.GetID()}, nil
	}

	created, _, err := c.api.Issues.CreateComment(ctx, c.owner, c.repo, prNumber,
		&gh.IssueComment{Body: gh.Ptr(body)})
	if err != nil {
		return nil, err
	}
	return &CommentResult{Action: "created", CommentID: created.GetID()}, nil
}
