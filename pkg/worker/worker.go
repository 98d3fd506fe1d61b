// Package worker runs reflow and autofit computations off the
// interactive path. Each topic gets one goroutine and a single-slot
// mailbox: a newly submitted request replaces a queued one, while work
// already in flight always completes and emits its response. Consumers
// discard responses whose id is no longer the latest for the topic, so
// cancellation is advisory rather than interruptive.
package worker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/reflow"
	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// Standard topics.
const (
	TopicReflow  = "reflow"
	TopicAutofit = "autofit"
)

// Request is one unit of work. The ID is caller-chosen and echoed back
// unchanged on the response.
type Request struct {
	ID    int64           `json:"id"`
	Input json.RawMessage `json:"input"`
}

// Response carries a request's result. Exactly one of Output and Err is
// meaningful.
type Response struct {
	ID     int64           `json:"id"`
	Topic  string          `json:"topic"`
	Output json.RawMessage `json:"output,omitempty"`
	Err    string          `json:"error,omitempty"`
}

// Handler computes a response payload from a request payload.
type Handler func(input json.RawMessage) (any, error)

type topicWorker struct {
	name    string
	handler Handler
	mailbox chan Request
}

// Pool owns the topic goroutines and the shared response channel.
type Pool struct {
	Logger *log.Logger

	topics map[string]*topicWorker
	out    chan Response

	mu     sync.Mutex
	latest map[string]int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts a pool with the standard reflow and autofit topics. The
// measurer may be nil: autofit then answers with the well-formed empty
// result instead of hanging. A nil logger falls back to the default.
func New(measurer textflow.Measurer, logger *log.Logger) *Pool {
	if logger == nil {
		logger = log.Default()
	}
	p := &Pool{
		Logger: logger,
		topics: make(map[string]*topicWorker),
		out:    make(chan Response),
		latest: make(map[string]int64),
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.register(ctx, TopicReflow, func(input json.RawMessage) (any, error) {
		var in reflow.PlanInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode reflow input")
		}
		return reflow.ComputePlan(in), nil
	})
	p.register(ctx, TopicAutofit, func(input json.RawMessage) (any, error) {
		var in reflow.AutoFitInput
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode autofit input")
		}
		return reflow.AutoFitBatch(in, measurer), nil
	})

	return p
}

func (p *Pool) register(ctx context.Context, name string, handler Handler) {
	w := &topicWorker{
		name:    name,
		handler: handler,
		mailbox: make(chan Request, 1),
	}
	p.topics[name] = w
	p.wg.Add(1)
	go p.run(ctx, w)
}

// Submit queues a request on a topic, superseding any request still
// waiting there.
func (p *Pool) Submit(topic string, req Request) error {
	w, ok := p.topics[topic]
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "unknown worker topic: %q", topic)
	}

	p.mu.Lock()
	p.latest[topic] = req.ID
	p.mu.Unlock()

	for {
		select {
		case w.mailbox <- req:
			return nil
		default:
		}
		select {
		case dropped := <-w.mailbox:
			p.Logger.Debug("superseded queued request",
				"topic", topic,
				"dropped_id", dropped.ID,
				"id", req.ID)
		default:
		}
	}
}

// Responses delivers every completed response, including stale ones;
// filter with Stale.
func (p *Pool) Responses() <-chan Response {
	return p.out
}

// Stale reports whether a response id has been superseded by a newer
// submission on its topic.
func (p *Pool) Stale(topic string, id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest[topic] != id
}

func (p *Pool) run(ctx context.Context, w *topicWorker) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.mailbox:
			resp := Response{ID: req.ID, Topic: w.name}
			output, err := w.handler(req.Input)
			if err != nil {
				resp.Err = err.Error()
			} else if data, merr := json.Marshal(output); merr != nil {
				resp.Err = merr.Error()
			} else {
				resp.Output = data
			}

			select {
			case p.out <- resp:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close stops the topic goroutines and closes the response channel. The
// context bounds how long to wait for in-flight work to finish.
func (p *Pool) Close(ctx context.Context) error {
	p.cancel()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(p.out)
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
