package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request id over HTTP and NATS message headers
const HeaderRequestID = "X-Request-ID"

type contextKey struct{}

// Info is what a request carries through the usecases: who made it and how
// to correlate its log lines and the events it publishes
type Info struct {
	RequestID   string
	ServiceName string
	ActorID     string
	ActorRole   string
	StartedAt   time.Time
}

// New returns an Info for an incoming request. An empty requestID gets a
// freshly generated one.
func New(requestID, serviceName string) *Info {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Info{
		RequestID:   requestID,
		ServiceName: serviceName,
		StartedAt:   time.Now(),
	}
}

// WithInfo returns ctx carrying info
func WithInfo(ctx context.Context, info *Info) context.Context {
	if info == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, info)
}

// FromContext returns the Info carried by ctx, if any
func FromContext(ctx context.Context) (*Info, bool) {
	if ctx == nil {
		return nil, false
	}
	info, ok := ctx.Value(contextKey{}).(*Info)
	return info, ok
}

// WithRequestID returns ctx carrying requestID. Used by consumers that pick
// the id up from a message header.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	info := &Info{}
	if existing, ok := FromContext(ctx); ok {
		*info = *existing
	}
	fresh := New(requestID, info.ServiceName)
	info.RequestID = fresh.RequestID
	if info.StartedAt.IsZero() {
		info.StartedAt = fresh.StartedAt
	}
	return WithInfo(ctx, info)
}

// WithActor records the authenticated caller on the request
func WithActor(ctx context.Context, actorID, role string) context.Context {
	info := &Info{}
	if existing, ok := FromContext(ctx); ok {
		*info = *existing
	}
	info.ActorID = actorID
	info.ActorRole = role
	return WithInfo(ctx, info)
}

// GetRequestID returns the request id carried by ctx or ""
func GetRequestID(ctx context.Context) string {
	if info, ok := FromContext(ctx); ok {
		return info.RequestID
	}
	return ""
}
