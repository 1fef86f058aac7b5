package eventdeck

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Audience selects one of the independent broadcast channels.
type Audience string

const (
	AudienceAll  Audience = "all"
	AudienceCrew Audience = "crew"
)

// NormalizeAudience maps the empty string to AudienceAll and rejects
// unknown values.
func NormalizeAudience(s string) (Audience, error) {
	switch Audience(s) {
	case "":
		return AudienceAll, nil
	case AudienceAll, AudienceCrew:
		return Audience(s), nil
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unknown audience %q", s)}
	}
}

// Message is an audience-scoped broadcast. AckedBy records which client
// ids have dismissed it; dismissal is per client and never deactivates
// the message globally. Only Clear does that.
type Message struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Active  bool     `json:"active"`
	Created string   `json:"created"`
	AckedBy []string `json:"acked_by"`
}

// ActiveFor reports whether clientID should still see the message.
func (m Message) ActiveFor(clientID string) bool {
	return m.Active && !slices.Contains(m.AckedBy, clientID)
}

// MessageView is the message as one client sees it: Active is false
// once that client has acknowledged, while other clients keep seeing
// the message until an admin clears it.
type MessageView struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Active  bool   `json:"active"`
	Created string `json:"created"`
}

// MessageRepo stores the broadcast singletons, one per audience.
type MessageRepo interface {
	// Message returns the audience's message; the zero value when none
	// has ever been posted.
	Message(ctx context.Context, aud Audience) (Message, error)
	PutMessage(ctx context.Context, aud Audience, m Message) error
}

// Messenger owns the broadcast/acknowledgement state machine. Each
// audience gets an independent message singleton with the same rules.
type Messenger struct {
	repo  MessageRepo
	newID func() string
	now   func() time.Time
}

func NewMessenger(repo MessageRepo) *Messenger {
	return &Messenger{
		repo:  repo,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Post replaces the audience's message with a fresh active one and
// resets the acknowledgement set, so clients that dismissed the
// previous message see the new one.
func (m *Messenger) Post(ctx context.Context, aud Audience, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, &ValidationError{Reason: "message text is required"}
	}
	msg := Message{
		ID:      m.newID(),
		Text:    text,
		Active:  true,
		Created: Timestamp(m.now()),
		AckedBy: []string{},
	}
	if err := m.repo.PutMessage(ctx, aud, msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Ack records that clientID dismissed the audience's message. Repeated
// acks are no-ops; the global active flag is never touched.
func (m *Messenger) Ack(ctx context.Context, aud Audience, clientID string) (Message, error) {
	if strings.TrimSpace(clientID) == "" {
		return Message{}, &ValidationError{Reason: "client_id is required"}
	}
	msg, err := m.repo.Message(ctx, aud)
	if err != nil {
		return Message{}, err
	}
	if slices.Contains(msg.AckedBy, clientID) {
		return msg, nil
	}
	msg.AckedBy = append(msg.AckedBy, clientID)
	if err := m.repo.PutMessage(ctx, aud, msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Clear deactivates the audience's message for every client, regardless
// of who has acknowledged it.
func (m *Messenger) Clear(ctx context.Context, aud Audience) error {
	msg, err := m.repo.Message(ctx, aud)
	if err != nil {
		return err
	}
	msg.Active = false
	return m.repo.PutMessage(ctx, aud, msg)
}

// ViewFor computes the client-scoped view of the audience's message.
func (m *Messenger) ViewFor(ctx context.Context, aud Audience, clientID string) (MessageView, error) {
	msg, err := m.repo.Message(ctx, aud)
	if err != nil {
		return MessageView{}, err
	}
	return MessageView{
		ID:      msg.ID,
		Text:    msg.Text,
		Active:  msg.ActiveFor(clientID),
		Created: msg.Created,
	}, nil
}
