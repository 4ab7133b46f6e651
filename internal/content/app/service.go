package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mimartz/storefront/internal/content/domain"
	"github.com/mimartz/storefront/pkg/validate"
)

var ErrInvalidInput = errors.New("invalid input")

var ContactAck = domain.Acknowledgement{
	Title: "Message Sent!",
	Text:  "Our concierge team will respond within 24 hours.",
}

var NewsletterAck = domain.Acknowledgement{
	Title: "Welcome to the Circle!",
	Text:  "You've been added to our exclusive list.",
}

type Service struct {
	pages domain.Pages
	log   *slog.Logger

	mu          sync.Mutex
	subscribers map[string]struct{}
}

// NewService serves pages with the standard delivery line priced at
// shippingFee, so the page always matches what checkout charges.
func NewService(pages domain.Pages, shippingFee int64, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	opts := make([]domain.ShippingOption, len(pages.Shipping.Options))
	copy(opts, pages.Shipping.Options)
	for i := range opts {
		if opts[i].Kind == domain.ShippingStandard {
			opts[i].Fee = shippingFee
		}
	}
	pages.Shipping.Options = opts

	return &Service{pages: pages, log: log, subscribers: make(map[string]struct{})}
}

func (s *Service) Shipping() (domain.ShippingPage, domain.ContactDetails) {
	return s.pages.Shipping, s.pages.Contact
}

func (s *Service) SizeGuide() domain.SizeGuide {
	return s.pages.SizeGuide
}

func (s *Service) Care() domain.CarePage {
	return s.pages.Care
}

func (s *Service) Contact() domain.ContactDetails {
	return s.pages.Contact
}

// SubmitContact validates the form and records it in the log for the
// concierge team. There is no outbound mail.
func (s *Service) SubmitContact(ctx context.Context, f domain.ContactForm) (domain.Acknowledgement, error) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)

	if err := validate.Struct(f); err != nil {
		return domain.Acknowledgement{}, fmt.Errorf("%w: %s", ErrInvalidInput, validate.Message(err))
	}

	s.log.InfoContext(ctx, "contact message received",
		slog.String("name", f.FirstName+" "+f.LastName),
		slog.String("email", f.Email),
		slog.Int("message_len", len(f.Message)),
	)
	return ContactAck, nil
}

// SubscribeNewsletter adds the address to the Inner Circle list. Addresses are
// compared case-insensitively and a repeat signup gets the same welcome.
func (s *Service) SubscribeNewsletter(ctx context.Context, f domain.NewsletterForm) (domain.Acknowledgement, error) {
	f.Email = strings.TrimSpace(f.Email)
	if err := validate.Struct(f); err != nil {
		return domain.Acknowledgement{}, fmt.Errorf("%w: %s", ErrInvalidInput, validate.Message(err))
	}

	key := strings.ToLower(f.Email)
	s.mu.Lock()
	_, seen := s.subscribers[key]
	s.subscribers[key] = struct{}{}
	total := len(s.subscribers)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "newsletter signup",
		slog.String("email", f.Email),
		slog.Bool("repeat", seen),
		slog.Int("subscribers", total),
	)
	return NewsletterAck, nil
}

// Subscribers reports how many distinct addresses have signed up.
func (s *Service) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}
