package nats

import (
	"context"
	"errors"

	"github.com/complykit/filingreview/internal/core/domain"
	"github.com/complykit/filingreview/internal/infrastructure/resilience"
	"github.com/nats-io/nats.go"
)

// classifyNATSError maps NATS failures onto retry/breaker semantics:
// connectivity failures are retryable and trip the breaker, context
// cancellation is neither.
func classifyNATSError(err error) resilience.Classification {
	if err == nil {
		return resilience.Classification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Classification{Retry: false, Record: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.Classification{Retry: true, Record: true}
	}
	if errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrDisconnected) {
		return resilience.Classification{Retry: true, Record: true}
	}

	return resilience.Classification{Retry: false, Record: true}
}

// wrapTemporaryIfNeeded marks retryable publish failures as temporary so
// callers can map them to a retry-later response.
func wrapTemporaryIfNeeded(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	class := classifyNATSError(err)
	if class.Retry || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, "nats publish", err)
	}
	return err
}
