package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	minInterval      = 10 * time.Millisecond
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Frame encodings selected with ?encoding=.
const (
	encodingJSON = "json"
	encodingCBOR = "cbor"
)

// wsEnvelope is one display frame pushed to a client.
type wsEnvelope struct {
	Type  string `json:"type" cbor:"1,keyasint"`
	Data  any    `json:"data,omitempty" cbor:"2,keyasint,omitempty"`
	Error string `json:"error,omitempty" cbor:"3,keyasint,omitempty"`
}

var cborFrames = mustCBOREncMode()

func mustCBOREncMode() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixMicro,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor frame encoder: %v", err))
	}
	return em
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins once the display host is configurable
}

// frameWriter writes one envelope in the negotiated encoding.
type frameWriter func(conn *websocket.Conn, env wsEnvelope) error

func writeJSONFrame(conn *websocket.Conn, env wsEnvelope) error {
	return conn.WriteJSON(env)
}

func writeCBORFrame(conn *websocket.Conn, env wsEnvelope) error {
	b, err := cborFrames.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode cbor frame: %w", err)
	}
	return conn.WriteMessage(websocket.BinaryMessage, b)
}

// @Summary      Display stream
// @Description  WebSocket pushing {"type":"state","data":TimerState} every interval. encoding=cbor sends binary CBOR frames with integer envelope keys.
// @Tags         timer
// @Param        interval     query  string  false  "Push period as a Go duration (10ms..10s)"  example(250ms)
// @Param        interval_ms  query  int     false  "Push period in milliseconds"  example(250)
// @Param        encoding     query  string  false  "Frame encoding"  Enums(json,cbor)
// @Success      101
// @Failure      400  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)
	write, ok := parseEncoding(c.Query("encoding"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "encoding must be json or cbor"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// the reader handles control frames and notices disconnects
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendState(ctx, conn, write); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendState(ctx, conn, write); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=250ms or ?interval_ms=250 within bounds;
// anything else falls back to the default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return max(time.Duration(v)*time.Millisecond, minInterval)
		}
	}
	return defaultInterval
}

func parseEncoding(s string) (frameWriter, bool) {
	switch s {
	case "", encodingJSON:
		return writeJSONFrame, true
	case encodingCBOR:
		return writeCBORFrame, true
	}
	return nil, false
}

// startReader drains incoming messages until the peer goes away.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendState writes the current state with a write deadline. A failed read
// is reported to the client before the connection closes.
func (h *Handler) sendState(ctx context.Context, conn *websocket.Conn, write frameWriter) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.log.Errorw("ws_get_state_failed", "err", err)
		_ = write(conn, wsEnvelope{Type: "error", Error: errGetState})
		return err
	}
	return write(conn, wsEnvelope{Type: "state", Data: st})
}
