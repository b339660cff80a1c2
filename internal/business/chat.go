package business

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	slogctx "github.com/veqryn/slog-context"

	"github.com/jobwire/jobwire-go/internal/config"
	"github.com/jobwire/jobwire-go/pkg/jobwire"
	"github.com/jobwire/jobwire-go/pkg/jobwire/realtime"
)

// ChatMain joins a conversation over the realtime connection, prints
// inbound messages, and sends lines read from stdin until interrupted.
func ChatMain(ctx context.Context, cfg *config.Config, conversationID string) error {
	manager, closeFn, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := requireAuth(manager); err != nil {
		return err
	}

	token, _ := manager.Token(ctx)

	rt := realtime.NewClient()
	if err := rt.Connect(ctx, cfg.Realtime.URL, token); err != nil {
		return fmt.Errorf("connecting to realtime endpoint: %w", err)
	}
	defer rt.Disconnect()

	rt.On(realtime.EventMessageNew, func(data json.RawMessage) {
		var msg jobwire.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slogctx.Debug(ctx, "Dropping malformed message frame", "error", err)
			return
		}
		fmt.Printf("[%s] %s\n", msg.SenderType, msg.Content)
	})

	rt.JoinConversation(conversationID)
	defer rt.LeaveConversation(conversationID)

	// Show recent history before going live.
	history, err := manager.Client().Messaging().ListMessages(ctx, conversationID, "", 20)
	if err != nil {
		return fmt.Errorf("listing messages: %w", err)
	}
	for i := len(history.Data) - 1; i >= 0; i-- {
		msg := history.Data[i]
		fmt.Printf("[%s] %s\n", msg.SenderType, msg.Content)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			rt.SendMessage(conversationID, line)
		case <-ctx.Done():
			return nil
		}
	}
}
