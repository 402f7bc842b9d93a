package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mkowalik/copydesk/internal/adapter/checkout"
	"github.com/mkowalik/copydesk/internal/domain/model"
)

// PaymentsFacade exposes the subset of application functionality required by the reconciler.
type PaymentsFacade interface {
	PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error)
	CheckSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
	ResolveSession(ctx context.Context, session model.CheckoutSession) error
}

// PaymentReconciler polls the checkout processor for pending payments and
// settles them. It is the safety net behind webhooks: a missed callback is
// picked up on the next poll, and settlement idempotency makes the overlap
// harmless.
type PaymentReconciler struct {
	facade       PaymentsFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciler worker pool.
func NewPaymentReconciler(facade PaymentsFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	payments, err := p.facade.PaymentsForReconciliation(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch pending payments failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- payment:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handlePayment(ctx, payment)
		}
	}
}

func (p *PaymentReconciler) handlePayment(ctx context.Context, payment model.Payment) {
	session, err := p.facade.CheckSession(ctx, payment.SessionID)
	if err != nil {
		switch e := err.(type) {
		case checkout.TooManyRequestsError:
			p.logger.Warn("checkout rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, checkout.ErrSessionNotFound) {
				p.logger.Warn("checkout session unknown", slog.String("session", payment.SessionID))
				return
			}
			p.logger.Error("checkout fetch failed", slog.String("session", payment.SessionID), slog.String("error", err.Error()))
		}
		return
	}

	if err := p.facade.ResolveSession(ctx, *session); err != nil {
		p.logger.Error("resolve session failed", slog.String("session", session.ID), slog.String("error", err.Error()))
	}
}
