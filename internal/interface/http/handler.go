package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/advisory"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/surprise"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	aqiSvc      aqi.Service
	advisorySvc advisory.Service
	surpriseSvc surprise.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(aqiSvc aqi.Service, advisorySvc advisory.Service, surpriseSvc surprise.Service, logger *slog.Logger) *Handler {
	return &Handler{
		aqiSvc:      aqiSvc,
		advisorySvc: advisorySvc,
		surpriseSvc: surpriseSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// aqiResponse decorates the aggregate with the band label used by the widget.
type aqiResponse struct {
	aqi.Response
	Category advisory.Category `json:"category"`
}

type surpriseResponse struct {
	City surprise.City `json:"city"`
	aqiResponse
}

// AQI returns the representative AQI around a coordinate.
func (h *Handler) AQI(c *gin.Context) {
	var req aqi.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.aqiSvc.Aggregate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, aqiResponse{Response: resp, Category: advisory.CategoryFor(resp.AQI)})
}

// Advise compares the displayed pet with the live reading.
func (h *Handler) Advise(c *gin.Context) {
	var req advisory.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.advisorySvc.Advise(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Surprise returns a random city and its AQI.
func (h *Handler) Surprise(c *gin.Context) {
	resp, err := h.surpriseSvc.Pick(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, surpriseResponse{
		City:        resp.City,
		aqiResponse: aqiResponse{Response: resp.AQI, Category: advisory.CategoryFor(resp.AQI.AQI)},
	})
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
