package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/groomer-scheduler/internal/validators"
)

type Message struct {
	To   string
	Body string
}

type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// Dispatcher envia em segundo plano; falhas são registradas e nunca
// bloqueiam quem chamou.
type Dispatcher struct {
	sender  Sender
	log     *zap.Logger
	queue   chan Message
	done    chan struct{}
	timeout time.Duration
}

// NewDispatcher aceita sender nil: as mensagens são apenas registradas.
func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sender:  sender,
		log:     log,
		queue:   make(chan Message, 100),
		done:    make(chan struct{}),
		timeout: 15 * time.Second,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	to := validators.NormalizePhone(msg.To)
	if !validators.IsPhone(to) {
		d.log.Warn("notification skipped: malformed phone", zap.String("to", msg.To))
		return
	}

	if d.sender == nil {
		d.log.Info("notification (sender disabled)", zap.String("to", to), zap.String("body", msg.Body))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	sid, err := d.sender.Send(ctx, to, msg.Body)
	if err != nil {
		d.log.Error("notification failed", zap.String("to", to), zap.Error(err))
		return
	}

	d.log.Info("notification sent", zap.String("to", to), zap.String("sid", sid))
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.log.Warn("notification queue full, dropping message", zap.String("to", msg.To))
	}
}

func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
