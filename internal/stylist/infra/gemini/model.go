// Package gemini adapts the Gemini API to the stylist's Model port.
package gemini

import (
	"context"
	"fmt"

	"github.com/mimartz/storefront/internal/stylist/app"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Model struct {
	client *genai.Client
	name   string
}

func New(ctx context.Context, apiKey, model string) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Model{client: client, name: model}, nil
}

func (m *Model) NewChat(ctx context.Context, systemPrompt string) (app.Chat, error) {
	chat, err := m.client.Chats.Create(ctx, m.name, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: create chat: %w", err)
	}
	return &session{chat: chat}, nil
}

type session struct {
	chat *genai.Chat
}

func (s *session) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
