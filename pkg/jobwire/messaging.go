package jobwire

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MessagingService wraps the REST side of the messaging endpoints.
// Realtime delivery goes through pkg/jobwire/realtime over the same
// domain vocabulary.
type MessagingService struct {
	client *Client
}

func (s *MessagingService) ListConversations(ctx context.Context) (Result[[]Conversation], error) {
	return getDecoded[[]Conversation](ctx, s.client, "/messages/conversations", nil)
}

type CreateConversationRequest struct {
	Type           ConversationType `json:"type"`
	ParticipantIDs []string         `json:"participant_ids"`
	GroupName      string           `json:"group_name,omitempty"`
}

func (s *MessagingService) CreateConversation(ctx context.Context, req CreateConversationRequest) (Result[Conversation], error) {
	return postDecoded[Conversation](ctx, s.client, "/messages/conversations", req)
}

// ListMessages returns a page of messages, newest first. before is an
// optional message ID cursor.
func (s *MessagingService) ListMessages(ctx context.Context, conversationID, before string, limit int) (Result[[]Message], error) {
	q := url.Values{}
	q.Set("before", before)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	return getDecoded[[]Message](ctx, s.client, fmt.Sprintf("/messages/conversations/%s/messages", conversationID), q)
}

type SendMessageRequest struct {
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type,omitempty"`
}

func (s *MessagingService) SendMessage(ctx context.Context, conversationID string, req SendMessageRequest) (Result[Message], error) {
	return postDecoded[Message](ctx, s.client, fmt.Sprintf("/messages/conversations/%s/messages", conversationID), req)
}

func (s *MessagingService) MarkRead(ctx context.Context, conversationID string) (Result[struct{}], error) {
	return postDecoded[struct{}](ctx, s.client, fmt.Sprintf("/messages/conversations/%s/read", conversationID), nil)
}
