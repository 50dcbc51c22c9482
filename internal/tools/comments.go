package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golovatskygroup/mcp-jira/pkg/mcp"
)

type addCommentInput struct {
	IssueKey string `json:"issueKey"`
	Body     string `json:"body"`
}

func (h *Handler) addComment(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in addCommentInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	comment, err := h.client.AddComment(ctx, in.IssueKey, in.Body)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(comment), nil
}

func (h *Handler) getComments(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in issueKeyInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	page, err := h.client.GetComments(ctx, in.IssueKey)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(page), nil
}

type updateCommentInput struct {
	IssueKey  string `json:"issueKey"`
	CommentID string `json:"commentId"`
	Body      string `json:"body"`
}

func (h *Handler) updateComment(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in updateCommentInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	comment, err := h.client.UpdateComment(ctx, in.IssueKey, in.CommentID, in.Body)
	if err != nil {
		return remoteError(err), nil
	}
	return jsonResult(comment), nil
}

type deleteCommentInput struct {
	IssueKey  string `json:"issueKey"`
	CommentID string `json:"commentId"`
}

func (h *Handler) deleteComment(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error) {
	var in deleteCommentInput
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult("invalid input: " + err.Error()), nil
	}
	if err := h.client.DeleteComment(ctx, in.IssueKey, in.CommentID); err != nil {
		return remoteError(err), nil
	}
	return textResult(fmt.Sprintf("Comment %s deleted from %s", in.CommentID, in.IssueKey)), nil
}
