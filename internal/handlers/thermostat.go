package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"controlling_thermostat/internal/engine"
	"controlling_thermostat/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusModeSet   = "mode_set"
	statusLimitsSet = "limits_set"
	statusApplied   = "applied"
	statusDeferred  = "deferred"

	errGetState         = "failed to load state"
	errApplyMeasurement = "failed to apply measurement"
	errInvalidBodyPref  = "invalid body: "
	errUnknownMode      = "unknown mode"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// Request DTO for setting the operating mode.
type modeRequest struct {
	Mode string `json:"mode" binding:"required"` // maintain_range | cool_to_set_point | heat_to_set_point | disabled | disabled_unsafe
}

// SetModeRequest is an exported model for Swagger docs of the setMode payload.
type SetModeRequest struct {
	// Mode to set. Allowed: maintain_range, cool_to_set_point, heat_to_set_point, disabled, disabled_unsafe
	Mode string `json:"mode" example:"maintain_range"`
}

// Request DTO for updating temperature limits; omitted fields are untouched.
type limitsRequest struct {
	MinSafeC *float64 `json:"min_safe_c,omitempty"`
	MaxSafeC *float64 `json:"max_safe_c,omitempty"`
	MinSetC  *float64 `json:"min_set_c,omitempty"`
	MaxSetC  *float64 `json:"max_set_c,omitempty"`
}

// SetLimitsRequest is an exported model for Swagger docs of the setLimits payload.
type SetLimitsRequest struct {
	// Lowest temperature considered safe, Celsius
	MinSafeC *float64 `json:"min_safe_c,omitempty" example:"15"`
	// Highest temperature considered safe, Celsius
	MaxSafeC *float64 `json:"max_safe_c,omitempty" example:"30"`
	// Lower comfort bound, Celsius (within the safe range)
	MinSetC *float64 `json:"min_set_c,omitempty" example:"19"`
	// Upper comfort bound, Celsius (within the safe range)
	MaxSetC *float64 `json:"max_set_c,omitempty" example:"23"`
}

// Request DTO for one sensor reading. TempC is a pointer so a reading of
// exactly 0 binds; "required" rejects only a missing field.
type measurementRequest struct {
	TempC *float64 `json:"temp_c" binding:"required"`
	RH    *float64 `json:"rh,omitempty"`
}

// PostMeasurementRequest is an exported model for Swagger docs of the measurement payload.
type PostMeasurementRequest struct {
	// Temperature reading in Celsius
	TempC float64 `json:"temp_c" example:"18.5"`
	// Relative humidity percentage, informational only
	RH *float64 `json:"rh,omitempty" example:"45"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get thermostat state
// @Tags         thermostat
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/thermostat/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "thermostat_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set operating mode
// @Tags         thermostat
// @Accept       json
// @Produce      json
// @Param        body  body   SetModeRequest  true  "Mode payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/thermostat/mode [put]
// @Security     BearerAuth
func (h *Handler) setMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	mode, err := engine.ParseOperatingMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownMode + ": " + req.Mode})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Control.SetMode(ctx, mode); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to set mode", "thermostat_set_mode_failed", err, "mode", req.Mode)
		return
	}
	h.respondWithStatusAndState(c, statusModeSet, gin.H{"mode": req.Mode})
}

// @Summary      Set temperature limits
// @Description  Omitted fields keep their current value. Set bounds must stay within the safe range.
// @Tags         thermostat
// @Accept       json
// @Produce      json
// @Param        body  body   SetLimitsRequest  true  "Limits payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/thermostat/limits [put]
// @Security     BearerAuth
func (h *Handler) setLimits(c *gin.Context) {
	var req limitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	err := h.services.Control.SetLimits(ctx, service.LimitParams{
		MinSafeC: req.MinSafeC,
		MaxSafeC: req.MaxSafeC,
		MinSetC:  req.MinSetC,
		MaxSetC:  req.MaxSetC,
	})
	if err != nil {
		var cfg *engine.ConfigError
		if errors.As(err, &cfg) {
			c.JSON(http.StatusBadRequest, gin.H{"error": cfg.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to set limits", "thermostat_set_limits_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusLimitsSet, gin.H{})
}

// @Summary      Submit a measurement
// @Description  Records the reading and runs one decision. A timing guard refusal is not an error: the response reports status=deferred and the refusing constraint.
// @Tags         thermostat
// @Accept       json
// @Produce      json
// @Param        body  body   PostMeasurementRequest  true  "Measurement payload"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/thermostat/measurements [post]
// @Security     BearerAuth
func (h *Handler) postMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	err := h.services.Control.FeedMeasurement(ctx, *req.TempC, req.RH)
	if err != nil {
		var ce *engine.ConstraintError
		if errors.As(err, &ce) {
			h.respondWithStatusAndState(c, statusDeferred, gin.H{"constraint": ce.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errApplyMeasurement, "thermostat_measurement_failed", err, "temp_c", *req.TempC)
		return
	}
	h.respondWithStatusAndState(c, statusApplied, gin.H{})
}
