package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/navheader/internal/errors"
	"github.com/vango-dev/navheader/pkg/middleware"
	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/navheader"
	"github.com/vango-dev/navheader/pkg/protocol"
	"github.com/vango-dev/navheader/pkg/render"
	"github.com/vango-dev/navheader/pkg/vdom"
)

// HandleWebSocket upgrades the request and runs a live session until the
// connection closes. The optional "path" query parameter sets the
// session's starting location.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	path := startPath(r.URL.Query().Get("path"))
	history := nav.NewHistory(path)

	navigator, traced := s.navigator(history)
	header, err := s.factory(r.Context(), navigator)
	if err != nil {
		s.logger.Error("header factory failed", "path", path, "error", err)
		http.Error(w, "failed to build header", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", err)
		if s.metrics != nil {
			s.metrics.WebSocketError("upgrade")
		}
		return
	}

	sess := &session{
		server:   s,
		conn:     conn,
		header:   header,
		history:  history,
		traced:   traced,
		renderer: render.NewRenderer(render.RendererConfig{}),
		ctx:      context.WithoutCancel(r.Context()),
	}
	s.track(sess)
	defer s.untrack(sess)

	sess.logger = s.logger.With(
		"session", sess.id,
		"request_id", chimw.GetReqID(r.Context()),
	)
	sess.logger.Debug("session started", "path", path)
	sess.run()
	sess.logger.Debug("session ended", "path", history.Current())
}

// session is one live connection and the header mounted for it. Events are
// handled one at a time on the read loop; all writes except close happen
// there too.
type session struct {
	id       uint64
	server   *Server
	conn     *websocket.Conn
	header   *navheader.Header
	history  *nav.History
	traced   *middleware.TracedNavigator
	renderer *render.Renderer
	ctx      context.Context
	logger   *slog.Logger
}

func (sess *session) run() {
	defer sess.conn.Close()

	if err := sess.send(nil); err != nil {
		return
	}

	idle := sess.server.config.IdleTimeout
	for {
		sess.conn.SetReadDeadline(time.Now().Add(idle))

		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
				sess.wsError("read")
			}
			return
		}

		if err := sess.handleMessage(msg); err != nil {
			return
		}
	}
}

// handleMessage processes one frame and answers it. The returned error is
// non-nil only when the connection can no longer be used.
func (sess *session) handleMessage(msg []byte) error {
	start := time.Now()

	event, err := protocol.DecodeEvent(msg)
	if err != nil {
		sess.logger.Warn("event decode error", "error", err)
		sess.observe("invalid", start, err)
		return sess.send(err)
	}

	err = sess.dispatch(event)
	sess.observe(event.Type, start, err)
	if err != nil {
		sess.logger.Warn("event failed", "hid", event.HID, "event", event.Type, "error", err)
	}
	return sess.send(err)
}

// dispatch runs the handler registered for the event in the last render.
func (sess *session) dispatch(event *protocol.Event) (err error) {
	ctx := sess.ctx
	if t := sess.server.tracer; t != nil {
		eventCtx, span := t.StartEvent(sess.ctx, event.HID, event.Type)
		ctx = eventCtx
		defer func() { middleware.EndEvent(span, err) }()
	}

	handler, ok := sess.renderer.Handler(event.HID, event.Type)
	if !ok {
		return errors.New("E401").WithDetailf("%s on %s", event.Type, event.HID)
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.New("E403").WithDetailf("%s on %s: %v", event.Type, event.HID, r)
		}
	}()
	invoked := false
	invoke := func() { invoked = vdom.Invoke(handler, event.Value) }
	if sess.traced != nil {
		// Navigation spans started by the handler join the event's trace.
		sess.traced.Within(ctx, invoke)
	} else {
		invoke()
	}
	if !invoked {
		return errors.New("E402").WithDetailf("%T", handler)
	}
	sess.logger.Debug("event", "hid", event.HID, "event", event.Type, "state", sess.header.State().String())
	return nil
}

// send renders the header and writes an update, reporting evErr if set.
func (sess *session) send(evErr error) error {
	sess.renderer.Reset()
	html, err := sess.renderer.RenderToString(sess.header.Render())
	if err != nil {
		sess.logger.Error("render failed", "error", err)
		sess.close(websocket.CloseInternalServerErr, "render failed")
		return err
	}

	update := &protocol.Update{
		HTML:    html,
		Path:    sess.history.Current(),
		Replace: sess.history.LastOptions().Replace,
	}
	if evErr != nil {
		update.Error = protocol.NewErrorMessage(evErr)
	}

	data, err := protocol.EncodeUpdate(update)
	if err != nil {
		return err
	}

	sess.conn.SetWriteDeadline(time.Now().Add(sess.server.config.WriteTimeout))
	if err := sess.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		sess.logger.Error("write error", "error", err)
		sess.wsError("write")
		return err
	}
	return nil
}

// close sends a close frame and closes the connection. It may be called
// from any goroutine.
func (sess *session) close(code int, reason string) {
	deadline := time.Now().Add(time.Second)
	sess.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	sess.conn.Close()
}

// observe records event metrics. Event names are bounded to keep label
// cardinality fixed.
func (sess *session) observe(event string, start time.Time, err error) {
	if sess.server.metrics == nil {
		return
	}
	switch event {
	case "click", "keydown", "focusout", "invalid":
	default:
		event = "other"
	}
	sess.server.metrics.ObserveEvent(event, time.Since(start), err)
}

func (sess *session) wsError(kind string) {
	if sess.server.metrics != nil {
		sess.server.metrics.WebSocketError(kind)
	}
}
