package discord

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// pageSize is the maximum number of messages Discord returns per history request.
const pageSize = 100

// Session is the subset of *discordgo.Session used by the transport.
type Session interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Message is a channel message reduced to the fields the bot reads.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
	Timestamp time.Time
}

// Transport posts and looks up messages through the Discord REST API.
type Transport struct {
	session Session

	mu     sync.Mutex
	selfID string
}

// NewSession creates a REST-only discordgo session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("discord bot token is not configured")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return s, nil
}

// NewTransport creates a transport over session.
func NewTransport(session Session) *Transport {
	return &Transport{session: session}
}

// SelfID returns the bot's user id. It is resolved once and cached.
func (t *Transport) SelfID(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.selfID != "" {
		return t.selfID, nil
	}
	u, err := t.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to resolve bot user: %w", err)
	}
	t.selfID = u.ID
	return t.selfID, nil
}

// History iterates the channel's messages newer than after, newest first.
func (t *Transport) History(ctx context.Context, channelID string, after time.Time) iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		before := ""
		for {
			page, err := t.session.ChannelMessages(channelID, pageSize, before, "", "", discordgo.WithContext(ctx))
			if err != nil {
				yield(Message{}, fmt.Errorf("failed to read history of %s: %w", channelID, err))
				return
			}

			for _, m := range page {
				if !m.Timestamp.After(after) {
					return
				}
				if !yield(toMessage(m), nil) {
					return
				}
			}

			if len(page) < pageSize {
				return
			}
			before = page[len(page)-1].ID
		}
	}
}

// Send posts a new message.
func (t *Transport) Send(ctx context.Context, channelID, content string) (*Message, error) {
	m, err := t.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to %s: %w", channelID, err)
	}
	msg := toMessage(m)
	return &msg, nil
}

// Edit replaces the content of an existing message.
func (t *Transport) Edit(ctx context.Context, channelID, messageID, content string) (*Message, error) {
	m, err := t.session.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to edit message %s: %w", messageID, err)
	}
	msg := toMessage(m)
	return &msg, nil
}

func toMessage(m *discordgo.Message) Message {
	if m == nil {
		return Message{}
	}
	msg := Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}
	return msg
}
