package nvim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/illfygli/neophyte/internal/event"
	"github.com/illfygli/neophyte/internal/rpc"
)

const defaultStopGrace = time.Second

// Config controls how the editor subprocess is launched.
type Config struct {
	// Command is the editor binary, "nvim" when empty.
	Command string

	// Args are appended after the embed flag, such as files to open.
	Args []string

	// Env entries are added to the inherited environment.
	Env []string

	// Handler receives editor-initiated requests and notifications other
	// than redraw. May be nil, in which case requests are answered with an
	// error so the editor never waits on us.
	Handler Handler

	// StopGrace bounds how long shutdown waits at each escalation step
	// before forcing the subprocess down.
	StopGrace time.Duration
}

// Handler receives traffic the session does not consume itself. Calls are
// made on fresh goroutines so a slow handler never stalls the reader.
type Handler interface {
	// HandleRequest handles an editor-initiated request. Answer it with
	// Session.Respond, in arrival order or not; the session releases
	// responses to the wire in the order the protocol demands.
	HandleRequest(req rpc.Request)

	// HandleNotification handles a notification other than redraw.
	HandleNotification(method string, params []any)

	// HandleShutdown runs once after the streams have closed. The Events
	// and Responses channels close as their remaining items drain.
	HandleShutdown()
}

// Reply is a completed call. Err carries the editor's error, if any.
type Reply struct {
	MsgID  uint64
	Result any
	Err    error
}

// Session drives one embedded editor. A reader goroutine owns the editor's
// stdout and a writer goroutine owns its stdin; everything else talks to
// them through queues, so no session method blocks on the editor.
//
// Calls are correlated under the protocol's reverse-order guarantee: the
// editor answers the most recent unanswered request first, and the session
// buffers anything that arrives early, releasing replies in discipline
// order on the Responses channel.
type Session struct {
	log zerolog.Logger
	id  string

	proc  *process
	codec *rpc.Codec
	grace time.Duration

	midMu  sync.Mutex
	nextID uint64

	// corrMu guards both correlators, separately from the msgid counter.
	corrMu   sync.Mutex
	calls    correlator[rpc.Response]
	incoming correlator[rpc.Response]

	outbox   *queue[rpc.Message]
	eventsQ  *queue[[]event.Event]
	repliesQ *queue[Reply]

	eventsCh  chan []event.Event
	repliesCh chan Reply

	decoder *event.Decoder
	handler Handler

	closing    atomic.Bool
	closeOnce  sync.Once
	finishOnce sync.Once
	done       chan struct{}

	errMu sync.Mutex
	cause error
}

// Spawn launches the editor subprocess and starts the session goroutines.
// The context bounds the subprocess's lifetime, not individual calls.
func Spawn(ctx context.Context, cfg Config, log zerolog.Logger) (*Session, error) {
	command := cfg.Command
	if command == "" {
		command = "nvim"
	}
	proc, err := startProcess(ctx, command, cfg.Args, cfg.Env)
	if err != nil {
		return nil, err
	}

	s := newSession(proc.stdout, proc.stdin, cfg, log)
	s.proc = proc
	s.log.Info().Str("command", command).Int("pid", proc.PID()).Msg("editor started")
	s.start()
	return s, nil
}

// newSession wires a session over raw streams. Spawn attaches the
// subprocess; tests attach pipes.
func newSession(r io.Reader, w io.Writer, cfg Config, log zerolog.Logger) *Session {
	id := uuid.NewString()
	log = log.With().Str("session", id).Logger()
	grace := cfg.StopGrace
	if grace <= 0 {
		grace = defaultStopGrace
	}
	return &Session{
		log:       log,
		id:        id,
		codec:     rpc.NewCodec(r, w),
		grace:     grace,
		outbox:    newQueue[rpc.Message](),
		eventsQ:   newQueue[[]event.Event](),
		repliesQ:  newQueue[Reply](),
		eventsCh:  make(chan []event.Event),
		repliesCh: make(chan Reply),
		decoder:   event.NewDecoder(log),
		handler:   cfg.Handler,
		done:      make(chan struct{}),
	}
}

func (s *Session) start() {
	go s.readLoop()
	go s.writeLoop()
	go pump(s.eventsQ, s.eventsCh)
	go pump(s.repliesQ, s.repliesCh)
}

// ID identifies this session in logs.
func (s *Session) ID() string { return s.id }

// Events delivers decoded redraw batches in arrival order. The channel
// closes at shutdown once buffered batches have drained.
func (s *Session) Events() <-chan []event.Event { return s.eventsCh }

// Responses delivers completed calls in release order. The channel closes
// at shutdown; calls still pending then are discarded and never answered.
func (s *Session) Responses() <-chan Reply { return s.repliesCh }

// Done is closed when the session has fully shut down.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err reports why the session ended. It is nil for an expected shutdown:
// a clean end of stream or a local Close.
func (s *Session) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.cause
}

func (s *Session) setCause(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.cause == nil {
		s.cause = err
	}
}

// Call issues a request and returns its msgid immediately; it never blocks
// and never fails. The reply arrives on Responses once the editor has
// answered everything issued after it. After shutdown the call is quietly
// discarded.
func (s *Session) Call(method string, params ...any) uint64 {
	s.midMu.Lock()
	msgid := s.nextID
	s.nextID++
	s.midMu.Unlock()

	s.corrMu.Lock()
	s.calls.track(msgid)
	s.corrMu.Unlock()

	req := rpc.Request{MsgID: msgid, Method: method, Params: params}
	if !s.outbox.push(req) {
		s.corrMu.Lock()
		s.calls.drop(msgid)
		s.corrMu.Unlock()
		s.log.Debug().Str("method", method).Uint64("msgid", msgid).Msg("call after shutdown discarded")
	}
	return msgid
}

// Notify sends a notification, which the editor never answers.
func (s *Session) Notify(method string, params ...any) {
	if !s.outbox.push(rpc.Notification{Method: method, Params: params}) {
		s.log.Debug().Str("method", method).Msg("notify after shutdown discarded")
	}
}

// Respond answers an editor-initiated request. The response may be produced
// in any order; it reaches the wire only once every request the editor sent
// after it has been answered, unwinding the request stack.
func (s *Session) Respond(msgid uint64, result any, callErr error) error {
	resp := rpc.Response{MsgID: msgid, Result: result}
	if callErr != nil {
		resp.Error = callErr.Error()
	}

	s.corrMu.Lock()
	ok := s.incoming.offer(msgid, resp)
	var released []answer[rpc.Response]
	if ok {
		released = s.incoming.ready()
	}
	s.corrMu.Unlock()

	if !ok {
		return fmt.Errorf("%w: msgid %d", ErrUnknownRequest, msgid)
	}
	for _, a := range released {
		if !s.outbox.push(a.value) {
			return ErrSessionClosed
		}
	}
	return nil
}

// Close shuts the session down: the outbox stops accepting traffic, the
// subprocess is stopped, and Close returns once the reader has finished.
// Safe to call from any goroutine, any number of times.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closing.Store(true)
		s.outbox.close()
		if s.proc != nil {
			s.proc.stop(s.grace)
		}
	})
	<-s.done
	return s.Err()
}

// readLoop owns the editor's stdout. It decodes messages and dispatches
// until the stream ends, then runs shutdown.
func (s *Session) readLoop() {
	for {
		msg, err := s.codec.ReadMessage()
		if err != nil {
			s.finish(err)
			return
		}
		switch m := msg.(type) {
		case rpc.Request:
			s.receiveRequest(m)
		case rpc.Notification:
			s.receiveNotification(m)
		case rpc.Response:
			s.receiveResponse(m)
		}
	}
}

// writeLoop owns the editor's stdin, draining the outbox in order.
func (s *Session) writeLoop() {
	for {
		msg, ok := s.outbox.pop()
		if !ok {
			return
		}
		if err := s.codec.WriteMessage(msg); err != nil {
			if !s.closing.Load() {
				s.log.Error().Err(err).Msg("write to editor failed")
				s.setCause(err)
				go s.Close()
			}
			return
		}
	}
}

func (s *Session) receiveRequest(m rpc.Request) {
	s.corrMu.Lock()
	s.incoming.track(m.MsgID)
	s.corrMu.Unlock()

	if s.handler == nil {
		// Never leave the editor waiting on a request we cannot serve.
		s.Respond(m.MsgID, nil, errors.New("client handles no requests"))
		return
	}
	go s.handler.HandleRequest(m)
}

func (s *Session) receiveNotification(m rpc.Notification) {
	if m.Method == "redraw" {
		if events := s.decoder.DecodeBatch(m.Params); len(events) > 0 {
			s.eventsQ.push(events)
		}
		return
	}
	if s.handler != nil {
		go s.handler.HandleNotification(m.Method, m.Params)
	}
}

// receiveResponse correlates one response. Anything the discipline makes
// releasable goes out as replies; a response nobody asked for is a protocol
// violation that is logged and dropped, and the session carries on.
func (s *Session) receiveResponse(m rpc.Response) {
	s.corrMu.Lock()
	ok := s.calls.offer(m.MsgID, m)
	var released []answer[rpc.Response]
	if ok {
		released = s.calls.ready()
	}
	s.corrMu.Unlock()

	if !ok {
		s.log.Error().Uint64("msgid", m.MsgID).Msg("protocol violation: response for a request that was never issued")
		return
	}
	for _, a := range released {
		s.repliesQ.push(Reply{MsgID: a.msgid, Result: a.value.Result, Err: a.value.Err()})
	}
}

// finish runs the shutdown path exactly once, from the reader goroutine.
// A clean end of stream and a locally initiated close are expected and
// leave Err nil; everything else is recorded and logged.
func (s *Session) finish(readErr error) {
	s.finishOnce.Do(func() {
		switch {
		case s.closing.Load():
			s.log.Debug().Msg("session closed")
		case errors.Is(readErr, io.EOF):
			s.log.Info().Msg("editor stream ended")
		default:
			s.setCause(readErr)
			s.log.Error().Err(readErr).Msg("session failed")
		}

		s.outbox.close()

		s.corrMu.Lock()
		abandonedCalls := s.calls.discard()
		abandonedReqs := s.incoming.discard()
		s.corrMu.Unlock()
		if abandonedCalls > 0 || abandonedReqs > 0 {
			s.log.Debug().
				Int("calls", abandonedCalls).
				Int("requests", abandonedReqs).
				Msg("discarding unanswered traffic")
		}

		s.eventsQ.close()
		s.repliesQ.close()

		if s.proc != nil {
			s.proc.stop(s.grace)
			s.log.Info().Int("exit_code", s.proc.ExitCode()).Msg("editor exited")
		}

		close(s.done)
		if s.handler != nil {
			s.handler.HandleShutdown()
		}
	})
}
