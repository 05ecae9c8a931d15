package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Behyna/paymentbot/internal/config"
	"github.com/Behyna/paymentbot/internal/metrics"
	"github.com/Behyna/paymentbot/internal/queue"
	"github.com/Behyna/paymentbot/internal/service"
	"github.com/Behyna/paymentbot/pkg/botapi"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const startCommand = "/start"

var (
	ErrUnsupportedEventKind = errors.New("UNSUPPORTED_EVENT_KIND")
	ErrDuplicateCallback    = errors.New("DUPLICATE_CALLBACK")
	ErrShutdownTimeout      = errors.New("SHUTDOWN_TIMEOUT")
)

type Handlers struct {
	Actions  service.ActionService
	Menu     service.MenuService
	Checkout service.CheckoutService
	Payments service.PaymentEventService
}

// Dispatcher runs a fixed pool of workers over the ingestion queue. Each
// worker takes one event, hands it to exactly one handler and moves on; a
// failing or panicking handler only loses its own event.
type Dispatcher struct {
	queue    *queue.Queue
	handlers Handlers
	cfg      config.Dispatcher
	metrics  *metrics.Metrics
	logger   *zap.Logger

	inflight singleflight.Group
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	start    sync.Once
}

func New(q *queue.Queue, handlers Handlers, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		queue:    q,
		handlers: handlers,
		cfg:      cfg.Dispatcher,
		metrics:  m,
		logger:   logger,
		cancel:   func() {},
	}
}

// Submit admits an event, blocking while the queue is full.
func (d *Dispatcher) Submit(ctx context.Context, event botapi.Event) error {
	if err := d.queue.Enqueue(ctx, event); err != nil {
		return err
	}

	d.metrics.RecordEventReceived(Kind(event), d.queue.Len())
	return nil
}

// Start launches the workers. Canceling ctx makes them quit before taking
// their next event.
func (d *Dispatcher) Start(ctx context.Context) {
	d.start.Do(func() {
		ctx, d.cancel = context.WithCancel(ctx)

		for i := 0; i < d.cfg.Workers; i++ {
			d.wg.Add(1)
			go d.work(ctx, i)
		}

		d.logger.Info("Dispatcher started",
			zap.Int("workers", d.cfg.Workers),
			zap.Int("queueCapacity", d.queue.Cap()))
	})
}

// Stop closes the queue and waits for the workers to drain it. Once the
// grace period or ctx runs out, workers stop between events and whatever is
// still queued is abandoned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.queue.Close()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	grace := time.NewTimer(d.cfg.ShutdownGrace)
	defer grace.Stop()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Dispatcher drained")
		return nil
	case <-grace.C:
	case <-ctx.Done():
	}

	d.cancel()
	d.logger.Warn("Dispatcher shutdown grace elapsed, abandoning queued events",
		zap.Int("pending", d.queue.Len()))

	return ErrShutdownTimeout
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()

	// handlers run detached so a shutdown never cuts an outbound call short
	handlerCtx := context.WithoutCancel(ctx)

	for ctx.Err() == nil {
		event, err := d.queue.Dequeue(ctx)
		if err != nil {
			d.logger.Debug("Worker stopped", zap.Int("worker", id), zap.Error(err))
			return
		}

		d.metrics.QueueDepth.Set(float64(d.queue.Len()))
		d.process(handlerCtx, event)
	}
}

func (d *Dispatcher) process(ctx context.Context, event botapi.Event) {
	kind := Kind(event)
	start := time.Now()
	status := metrics.StatusOK

	d.metrics.BusyWorkers.Inc()
	defer func() {
		if r := recover(); r != nil {
			status = metrics.StatusPanic
			d.logger.Error("Handler panicked",
				zap.String("kind", kind),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}

		d.metrics.BusyWorkers.Dec()
		d.metrics.RecordEventHandled(kind, status, time.Since(start))
	}()

	err := d.Dispatch(ctx, event)

	switch {
	case err == nil:
	case errors.Is(err, ErrUnsupportedEventKind):
		status = metrics.StatusUnsupported
		d.logger.Warn("Unsupported event", zap.String("kind", kind))
	case errors.Is(err, service.ErrUnknownCallbackToken):
		status = metrics.StatusIgnored
		d.logger.Debug("Callback with unknown token ignored", zap.Error(err))
	case errors.Is(err, ErrDuplicateCallback):
		status = metrics.StatusDuplicate
		d.logger.Debug("Duplicate callback ignored", zap.Error(err))
	default:
		status = metrics.StatusError
		d.logger.Error("Failed to handle event", zap.String("kind", kind), zap.Error(err))
	}
}

// Dispatch classifies event and runs its handler on the calling goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, event botapi.Event) error {
	switch e := event.(type) {
	case *botapi.TextMessage:
		if e.Payment != nil {
			return d.handlers.Payments.Record(ctx, e)
		}
		if e.Text == startCommand {
			return d.handlers.Menu.Start(ctx, e.ChatID, e.From)
		}
		return nil

	case *botapi.CallbackQuery:
		return d.handleCallback(ctx, e)

	case *botapi.ShippingQuery:
		return d.handlers.Checkout.AnswerShipping(ctx, e)

	case *botapi.PreCheckoutQuery:
		return d.handlers.Checkout.AnswerPreCheckout(ctx, e)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedEventKind, Kind(event))
	}
}

func (d *Dispatcher) handleCallback(ctx context.Context, query *botapi.CallbackQuery) error {
	if err := d.handlers.Actions.AnswerCallback(ctx, query.ID); err != nil {
		d.logger.Warn("Failed to answer callback query",
			zap.String("queryID", query.ID),
			zap.Error(err))
	}

	if !d.cfg.DedupeCallbacks {
		return d.handlers.Menu.Handle(ctx, query)
	}

	key := strconv.FormatInt(query.ChatID, 10) + ":" + strconv.Itoa(query.MessageID)

	ran := false
	_, err, _ := d.inflight.Do(key, func() (interface{}, error) {
		ran = true
		return nil, d.handlers.Menu.Handle(ctx, query)
	})
	if !ran {
		return fmt.Errorf("%w: %s", ErrDuplicateCallback, key)
	}

	return err
}

// Kind names the event variant for logs and metric labels.
func Kind(event botapi.Event) string {
	switch e := event.(type) {
	case *botapi.TextMessage:
		if e.Payment != nil {
			return "payment"
		}
		return "message"
	case *botapi.CallbackQuery:
		return "callback_query"
	case *botapi.ShippingQuery:
		return "shipping_query"
	case *botapi.PreCheckoutQuery:
		return "pre_checkout_query"
	case *botapi.UnsupportedEvent:
		if e.Kind != "" {
			return e.Kind
		}
		return "unsupported"
	default:
		return "unknown"
	}
}
