package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
)

// GatewayStub records payment orders opened at the gateway.
type GatewayStub struct {
	CreateFn func(context.Context, model.GatewayOrderRequest) (string, error)

	mu       sync.Mutex
	Requests []model.GatewayOrderRequest
}

// CreateOrder returns "order_<receipt>" unless overridden.
func (g *GatewayStub) CreateOrder(ctx context.Context, req model.GatewayOrderRequest) (string, error) {
	g.mu.Lock()
	g.Requests = append(g.Requests, req)
	g.mu.Unlock()
	if g.CreateFn != nil {
		return g.CreateFn(ctx, req)
	}
	return fmt.Sprintf("order_%s", req.Receipt), nil
}

// Calls returns the number of gateway requests made so far.
func (g *GatewayStub) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Requests)
}

// NotifierRecorder collects dispatched events.
type NotifierRecorder struct {
	mu     sync.Mutex
	events []model.OrderEvent
}

// Notify stores the event.
func (n *NotifierRecorder) Notify(event model.OrderEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns a copy of the recorded events.
func (n *NotifierRecorder) Events() []model.OrderEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.OrderEvent(nil), n.events...)
}

// Types returns the recorded event types in dispatch order.
func (n *NotifierRecorder) Types() []model.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]model.EventType, 0, len(n.events))
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

// SinkStub implements a notification sink with a configurable error.
type SinkStub struct {
	PublishFn func(context.Context, model.OrderEvent) error

	mu        sync.Mutex
	Published []model.OrderEvent
	Closed    bool
}

// Publish records event unless PublishFn fails.
func (s *SinkStub) Publish(ctx context.Context, event model.OrderEvent) error {
	if s.PublishFn != nil {
		if err := s.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, event)
	return nil
}

// Close marks the sink closed.
func (s *SinkStub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// Events returns a copy of the published events.
func (s *SinkStub) Events() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderEvent(nil), s.Published...)
}
