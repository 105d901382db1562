package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
)

// Sink delivers a single balance-change message to guardians.
type Sink interface {
	Deliver(ctx context.Context, msg BalanceChangeMessage) error
}

// BalanceChangeMessage describes a balance change after a committed payment.
type BalanceChangeMessage struct {
	StudentID  string
	NewBalance decimal.Decimal
	NewStatus  domain.TuitionStatus
	OccurredAt time.Time
}

// Notifier implements usecase.Notifier. Delivery is fire-and-forget:
// it runs after the payment has committed, never blocks the caller, and
// failures are only logged.
type Notifier struct {
	sink    Sink
	logger  zerolog.Logger
	timeout time.Duration
}

// New creates a Notifier around a delivery sink.
func New(sink Sink, logger zerolog.Logger) *Notifier {
	return &Notifier{
		sink:    sink,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// NotifyBalanceChanged delivers the notification on a detached context so
// that the request context finishing does not cancel delivery.
func (n *Notifier) NotifyBalanceChanged(ctx context.Context, studentID string, newBalance decimal.Decimal, newStatus domain.TuitionStatus) {
	msg := BalanceChangeMessage{
		StudentID:  studentID,
		NewBalance: newBalance,
		NewStatus:  newStatus,
		OccurredAt: time.Now().UTC(),
	}

	detached := context.WithoutCancel(ctx)

	go func() {
		deliverCtx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()

		if err := n.sink.Deliver(deliverCtx, msg); err != nil {
			n.logger.Warn().
				Err(err).
				Str("student_id", studentID).
				Msg("guardian notification delivery failed")
			return
		}

		n.logger.Debug().
			Str("student_id", studentID).
			Str("new_status", string(newStatus)).
			Msg("guardian notification delivered")
	}()
}

// LogSink writes notifications to the log. It stands in for an SMS or
// email gateway in deployments that have none configured.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Deliver logs the balance change.
func (s *LogSink) Deliver(_ context.Context, msg BalanceChangeMessage) error {
	s.logger.Info().
		Str("student_id", msg.StudentID).
		Str("new_balance", msg.NewBalance.String()).
		Str("new_status", string(msg.NewStatus)).
		Time("occurred_at", msg.OccurredAt).
		Msg("balance changed")

	return nil
}
