package handlers

import (
	"errors"
	"net/http"
	"time"

	"countdown_timer/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK          = "ok"
	statusStarted     = "started"
	statusStopped     = "stopped"
	statusReset       = "reset"
	statusRestarted   = "restarted"
	statusSet         = "set"
	statusPresetSet   = "preset_applied"
	errTimerOperation = "timer operation failed"
	errTimerClosed    = "timer is shutting down"
	errGetState       = "failed to load state"
	errUnknownPreset  = "unknown preset"
	errInvalidBody    = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...any) {
	if err != nil {
		h.log.Errorw(logKey, append([]any{"err", err}, kv...)...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// timerError maps a service error from a timer operation to a response.
func (h *Handler) timerError(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrTimerClosed):
		h.logAndJSONError(c, http.StatusServiceUnavailable, errTimerClosed, logKey, err)
	case errors.Is(err, service.ErrUnknownPreset):
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownPreset})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errTimerOperation, logKey, err)
	}
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// bindOptionalJSON binds the body when there is one. It writes a 400 and
// returns false on malformed input.
func (h *Handler) bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return false
	}
	return true
}

// FastForwardRequest is the optional body of start and reset-and-start.
type FastForwardRequest struct {
	// Milliseconds added to the clock before it starts; may be negative.
	FastForwardMs int64 `json:"fast_forward_ms" example:"2000"`
}

// ResetRequest is the optional body of reset.
type ResetRequest struct {
	// Skip the reset callback (no RESET audit event).
	PreventCallback bool `json:"prevent_callback" example:"false"`
}

// SetRequest is the body of set. Absent fields leave the timer unchanged;
// unknown fields are ignored.
type SetRequest struct {
	TimeMs    *int64 `json:"time_ms,omitempty" example:"30000"`
	StartAtMs *int64 `json:"start_at_ms,omitempty" example:"60000"`
	CountDown *bool  `json:"count_down,omitempty" example:"true"`
	// running=true with no action resumes the timer.
	Running *bool `json:"running,omitempty"`
	// Anchor of the action as RFC3339; last_event_time_ms (Unix ms) wins when both are set.
	LastEventTime   *time.Time `json:"last_event_time,omitempty" example:"2025-08-27T15:04:05Z"`
	LastEventTimeMs *int64     `json:"last_event_time_ms,omitempty" example:"1756307045000"`
	// start | stop | reset | resetAndStart
	Action        string `json:"action,omitempty" example:"start"`
	DelayActionMs int64  `json:"delay_action_ms,omitempty" example:"3000"`
	Compensate    bool   `json:"compensate,omitempty" example:"true"`
}

func (r SetRequest) params() service.SetParams {
	p := service.SetParams{
		CountDown:     r.CountDown,
		Running:       r.Running,
		LastEventTime: r.LastEventTime,
		Action:        r.Action,
		DelayAction:   msToDuration(r.DelayActionMs),
		Compensate:    r.Compensate,
	}
	if r.TimeMs != nil {
		d := msToDuration(*r.TimeMs)
		p.Time = &d
	}
	if r.StartAtMs != nil {
		d := msToDuration(*r.StartAtMs)
		p.StartAt = &d
	}
	if r.LastEventTimeMs != nil {
		t := time.UnixMilli(*r.LastEventTimeMs)
		p.LastEventTime = &t
	}
	return p
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Start timer
// @Description  No-op while the timer is running.
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      FastForwardRequest  false  "Optional fast-forward"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/timer/start [post]
// @Security     BearerAuth
func (h *Handler) startTimer(c *gin.Context) {
	var req FastForwardRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	if err := h.services.Timer.Start(c.Request.Context(), msToDuration(req.FastForwardMs)); err != nil {
		h.timerError(c, "timer_start_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStarted, gin.H{})
}

// @Summary      Stop timer
// @Tags         timer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/timer/stop [post]
// @Security     BearerAuth
func (h *Handler) stopTimer(c *gin.Context) {
	if err := h.services.Timer.Stop(c.Request.Context()); err != nil {
		h.timerError(c, "timer_stop_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped, gin.H{})
}

// @Summary      Reset timer
// @Description  Sets the clock back to its start value without stopping it.
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      ResetRequest  false  "Reset options"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/timer/reset [post]
// @Security     BearerAuth
func (h *Handler) resetTimer(c *gin.Context) {
	var req ResetRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	if err := h.services.Timer.Reset(c.Request.Context(), req.PreventCallback); err != nil {
		h.timerError(c, "timer_reset_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusReset, gin.H{})
}

// @Summary      Reset and start timer
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      FastForwardRequest  false  "Optional fast-forward"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/timer/reset-and-start [post]
// @Security     BearerAuth
func (h *Handler) resetAndStartTimer(c *gin.Context) {
	var req FastForwardRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	if err := h.services.Timer.ResetAndStart(c.Request.Context(), msToDuration(req.FastForwardMs)); err != nil {
		h.timerError(c, "timer_reset_and_start_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusRestarted, gin.H{})
}

// @Summary      Set timer fields
// @Description  Applies the given fields, then runs or schedules the action relative to last_event_time.
// @Tags         timer
// @Accept       json
// @Produce      json
// @Param        body  body      SetRequest  true  "Fields"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/timer/set [post]
// @Security     BearerAuth
func (h *Handler) setTimer(c *gin.Context) {
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return
	}
	if err := h.services.Timer.Set(c.Request.Context(), req.params()); err != nil {
		h.timerError(c, "timer_set_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSet, gin.H{})
}

// @Summary      Get timer state
// @Tags         timer
// @Produce      json
// @Success      200  {object}  models.TimerState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/timer/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "timer_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      List presets
// @Tags         timer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "presets"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/timer/presets [get]
// @Security     BearerAuth
func (h *Handler) listPresets(c *gin.Context) {
	presets := h.services.Timer.Presets()
	out := make([]gin.H, 0, len(presets))
	for _, name := range presets.Names() {
		p := presets[name]
		out = append(out, gin.H{
			"name":        name,
			"start_at_ms": p.StartAt.Milliseconds(),
			"count_down":  p.CountDown,
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

// @Summary      Apply preset
// @Description  Loads a named preset as the new start value and resets the clock to it.
// @Tags         timer
// @Produce      json
// @Param        name  path      string  true  "Preset name"
// @Success      200   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/timer/presets/{name} [post]
// @Security     BearerAuth
func (h *Handler) applyPreset(c *gin.Context) {
	name := c.Param("name")
	if err := h.services.Timer.ApplyPreset(c.Request.Context(), name); err != nil {
		h.timerError(c, "timer_apply_preset_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusPresetSet, gin.H{"preset": name})
}
