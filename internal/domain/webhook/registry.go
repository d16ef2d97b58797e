// Package webhook manages webhook subscriptions and delivers call lifecycle
// events to them.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"call-center-server/internal/utils/idgen"
)

// ErrNotFound is returned when a webhook ID is not registered.
var ErrNotFound = errors.New("webhook not found")

// SupportedEvents is the whitelist of subscribable event names.
var SupportedEvents = []string{
	"call.started",
	"call.ended",
	"call.transferred",
	"call.recording.available",
}

// Subscription is one registered webhook endpoint.
type Subscription struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Secret    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Registry holds webhook subscriptions in memory.
type Registry struct {
	mu            sync.RWMutex
	subscriptions map[string]*Subscription

	validate *validator.Validate
	log      zerolog.Logger
}

// NewRegistry creates an empty webhook registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		subscriptions: make(map[string]*Subscription),
		validate:      validator.New(),
		log:           log.With().Str("component", "webhook-registry").Logger(),
	}
}

// Register validates and stores a new subscription.
func (r *Registry) Register(ctx context.Context, url string, events []string, secret string) (*Subscription, error) {
	if err := r.validate.Var(url, "required,http_url"); err != nil {
		return nil, fmt.Errorf("invalid webhook URL %q", url)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("at least one event is required")
	}
	for _, event := range events {
		if !eventSupported(event) {
			return nil, fmt.Errorf("unsupported event %q", event)
		}
	}

	id, err := idgen.GenerateSecureID("wh", 16)
	if err != nil {
		return nil, err
	}
	sub := &Subscription{
		ID:        id,
		URL:       url,
		Events:    append([]string(nil), events...),
		Secret:    secret,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.subscriptions[id] = sub
	r.mu.Unlock()

	r.log.Info().Str("webhook_id", id).Str("url", url).Strs("events", events).Msg("webhook registered")
	return sub, nil
}

// Unregister removes a subscription.
func (r *Registry) Unregister(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscriptions[id]; !ok {
		return ErrNotFound
	}
	delete(r.subscriptions, id)
	r.log.Info().Str("webhook_id", id).Msg("webhook unregistered")
	return nil
}

// Get returns a subscription by ID.
func (r *Registry) Get(ctx context.Context, id string) (*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subscriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sub, nil
}

// List returns all subscriptions.
func (r *Registry) List(ctx context.Context) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Subscription, 0, len(r.subscriptions))
	for _, sub := range r.subscriptions {
		out = append(out, sub)
	}
	return out
}

// SubscribersFor returns the subscriptions listening for an event.
func (r *Registry) SubscribersFor(event string) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Subscription
	for _, sub := range r.subscriptions {
		for _, e := range sub.Events {
			if e == event {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}

func eventSupported(event string) bool {
	for _, e := range SupportedEvents {
		if e == event {
			return true
		}
	}
	return false
}
