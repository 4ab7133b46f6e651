package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mimartz/storefront/internal/stylist/domain"
)

var ErrInvalidInput = errors.New("invalid input")

// maxMessageLen bounds a single shopper message in bytes.
const maxMessageLen = 2000

// Model opens chats against the language model. A nil Model means the
// stylist is disabled and every turn gets the unreachable fallback.
type Model interface {
	NewChat(ctx context.Context, systemPrompt string) (Chat, error)
}

// Chat is one ongoing model conversation. Implementations need not be safe
// for concurrent use; the service serializes turns per session.
type Chat interface {
	Send(ctx context.Context, text string) (string, error)
}

type conversation struct {
	mu      sync.Mutex
	chat    Chat
	history []domain.Message

	// lastSeen is guarded by Service.mu.
	lastSeen time.Time
}

type Service struct {
	model Model
	log   *slog.Logger
	now   func() time.Time

	mu    sync.Mutex
	convs map[string]*conversation
}

func NewService(model Model, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		model: model,
		log:   log,
		now:   time.Now,
		convs: make(map[string]*conversation),
	}
}

func (s *Service) Enabled() bool {
	return s.model != nil
}

// History returns the conversation so far, starting with the welcome line.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}
	c := s.conversation(sessionID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.history...), nil
}

// Send runs one chat turn. Model failures never surface as errors: the reply
// carries a fallback text with IsError set.
func (s *Service) Send(ctx context.Context, sessionID, text string) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if sessionID == "" || text == "" || len(text) > maxMessageLen {
		return domain.Message{}, ErrInvalidInput
	}

	c := s.conversation(sessionID)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, domain.Message{Role: domain.RoleUser, Text: text})
	reply := s.turn(ctx, c, text)
	c.history = append(c.history, reply)
	s.touch(sessionID, c)
	return reply, nil
}

func (s *Service) turn(ctx context.Context, c *conversation, text string) domain.Message {
	unreachable := domain.Message{Role: domain.RoleModel, Text: domain.FallbackUnreachable, IsError: true}
	if s.model == nil {
		return unreachable
	}

	if c.chat == nil {
		chat, err := s.model.NewChat(ctx, domain.SystemPrompt)
		if err != nil {
			s.log.WarnContext(ctx, "stylist chat create failed", slog.Any("err", err))
			return unreachable
		}
		c.chat = chat
	}

	out, err := c.chat.Send(ctx, text)
	if err != nil {
		s.log.WarnContext(ctx, "stylist send failed", slog.Any("err", err))
		return unreachable
	}
	if strings.TrimSpace(out) == "" {
		return domain.Message{Role: domain.RoleModel, Text: domain.FallbackEmpty, IsError: true}
	}
	return domain.Message{Role: domain.RoleModel, Text: out}
}

// conversation returns the session's conversation, creating it if needed, and
// marks it seen under the map lock so a concurrent Sweep cannot drop it
// between lookup and use.
func (s *Service) conversation(sessionID string) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[sessionID]
	if !ok {
		c = &conversation{
			history: []domain.Message{{Role: domain.RoleModel, Text: domain.Welcome}},
		}
		s.convs[sessionID] = c
	}
	c.lastSeen = s.now()
	return c
}

// touch refreshes c after a turn and puts it back if a sweep removed it while
// the turn was running.
func (s *Service) touch(sessionID string, c *conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.convs[sessionID]; !ok || cur == c {
		s.convs[sessionID] = c
	}
	c.lastSeen = s.now()
}

// Sweep forgets conversations idle for longer than ttl.
func (s *Service) Sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, c := range s.convs {
		if !c.mu.TryLock() {
			continue
		}
		if c.lastSeen.Before(cutoff) {
			delete(s.convs, id)
			n++
		}
		c.mu.Unlock()
	}
	return n
}
