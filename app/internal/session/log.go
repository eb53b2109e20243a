package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/agent"
)

type submitRequest struct {
	text  string
	reply chan error
}

type outcome struct {
	question string
	answer   *entities.Answer
	err      error
}

// Log is the question log of one mounted session. A single goroutine owns
// the SessionState; every other goroutine talks to it over channels.
type Log struct {
	asker agent.Asker

	submits   chan submitRequest
	snapshots chan chan entities.SessionState
	// results holds at most one outcome, so a worker finishing after Close
	// never blocks.
	results chan outcome
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once

	onChange   func(entities.SessionState)
	onExchange func(entities.Exchange)
	now        func() time.Time

	// final is written by the loop before done is closed.
	final entities.SessionState
}

// Option configures a Log.
type Option func(*Log)

// WithOnChange registers a callback invoked from the owning goroutine after
// every state change. It must not call back into the Log.
func WithOnChange(fn func(entities.SessionState)) Option {
	return func(l *Log) { l.onChange = fn }
}

// WithOnExchange registers a callback invoked once per completed exchange.
func WithOnExchange(fn func(entities.Exchange)) Option {
	return func(l *Log) { l.onExchange = fn }
}

// WithClock overrides time.Now for exchange ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// NewLog starts an empty session log backed by asker.
func NewLog(asker agent.Asker, opts ...Option) *Log {
	l := &Log{
		asker:     asker,
		submits:   make(chan submitRequest),
		snapshots: make(chan chan entities.SessionState),
		results:   make(chan outcome, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.run()
	return l
}

// Submit asks rawText unless it is blank or a request is already in flight.
// Rejected submissions leave the state untouched and are reported with
// ErrEmptyQuestion, ErrRequestPending or ErrLogClosed.
func (l *Log) Submit(rawText string) error {
	req := submitRequest{text: rawText, reply: make(chan error, 1)}
	select {
	case l.submits <- req:
		return <-req.reply
	case <-l.done:
		return entities.ErrLogClosed
	}
}

// Snapshot returns a copy of the current state. After Close it returns the
// state as it was when the log stopped.
func (l *Log) Snapshot() entities.SessionState {
	reply := make(chan entities.SessionState, 1)
	select {
	case l.snapshots <- reply:
		return <-reply
	case <-l.done:
		return l.final.Clone()
	}
}

// Close stops the owning goroutine. A request still in flight runs to
// completion and its result is dropped.
func (l *Log) Close() {
	l.once.Do(func() { close(l.quit) })
	<-l.done
}

func (l *Log) run() {
	defer close(l.done)

	var (
		state  = entities.SessionState{Exchanges: []entities.Exchange{}}
		lastID int64
	)

	for {
		select {
		case req := <-l.submits:
			question := strings.TrimSpace(req.text)
			switch {
			case question == "":
				req.reply <- entities.ErrEmptyQuestion
				continue
			case state.Pending:
				log.Debug("dropping submission while a request is in flight")
				req.reply <- entities.ErrRequestPending
				continue
			}
			state.Pending = true
			req.reply <- nil
			go l.ask(question)
			l.changed(state)

		case res := <-l.results:
			ex := l.exchange(res, &lastID)
			state.Exchanges = append([]entities.Exchange{ex}, state.Exchanges...)
			state.CumulativeTokens += ex.TotalTokens
			state.Pending = false
			if l.onExchange != nil {
				l.onExchange(ex)
			}
			l.changed(state)

		case reply := <-l.snapshots:
			reply <- state.Clone()

		case <-l.quit:
			l.final = state.Clone()
			return
		}
	}
}

func (l *Log) ask(question string) {
	answer, err := l.asker.Ask(context.Background(), question)
	l.results <- outcome{question: question, answer: answer, err: err}
}

func (l *Log) exchange(res outcome, lastID *int64) entities.Exchange {
	at := l.now()
	id := at.UnixMilli()
	if id <= *lastID {
		id = *lastID + 1
	}
	*lastID = id

	ex := entities.Exchange{ID: id, Question: res.question, OccurredAt: at}
	if res.err == nil && res.answer == nil {
		res.err = entities.NewMalformedResponseError(0, nil)
	}
	if res.err != nil {
		log.Info("question failed", "err", res.err)
		ex.Answer = "Error: " + res.err.Error()
		ex.Failed = true
		return ex
	}

	ex.Answer = res.answer.Text
	ex.PromptTokens = res.answer.Usage.PromptTokens
	ex.CompletionTokens = res.answer.Usage.CompletionTokens
	ex.TotalTokens = res.answer.Usage.TotalTokens
	return ex
}

func (l *Log) changed(state entities.SessionState) {
	if l.onChange != nil {
		l.onChange(state.Clone())
	}
}
