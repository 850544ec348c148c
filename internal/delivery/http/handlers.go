package http

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/internal/service"
	"github.com/crimemap/backend/pkg/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	records   *service.RecordService
	sessions  *service.SessionManager
	analytics *service.AnalyticsService
}

// NewHandler creates a new handler
func NewHandler(records *service.RecordService, sessions *service.SessionManager, analytics *service.AnalyticsService) *Handler {
	return &Handler{
		records:   records,
		sessions:  sessions,
		analytics: analytics,
	}
}

// HotspotView is a record with its derived classification
type HotspotView struct {
	domain.IncidentRecord
	Tier        domain.RiskTier     `json:"tier"`
	Encoding    domain.Encoding     `json:"encoding"`
	RiskPercent int                 `json:"risk_percent"`
	Popup       domain.PopupPayload `json:"popup"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	source := "ok"
	if err := h.records.Health(c.Context()); err != nil {
		zap.L().Warn("record source unhealthy", zap.Error(err))
		status = "degraded"
		source = err.Error()
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"service":  "crimemap-backend",
		"version":  "1.0.0",
		"source":   source,
		"sessions": h.sessions.Count(),
	})
}

// GetViews returns the navigation menu
func (h *Handler) GetViews(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    domain.DefaultNavigation(),
	})
}

// GetHotspots returns the current snapshot with classifications
func (h *Handler) GetHotspots(c *fiber.Ctx) error {
	snap := h.records.Snapshot()
	records := snap.Records()

	data := make([]HotspotView, 0, len(records))
	for _, r := range records {
		cls := hotspot.Classify(r.Intensity)
		data = append(data, HotspotView{
			IncidentRecord: r,
			Tier:           cls.Tier,
			Encoding:       cls.Encoding,
			RiskPercent:    hotspot.RiskPercent(r.Intensity),
			Popup:          hotspot.Popup(r),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
		"version": snap.Version,
	})
}

// Classify returns the tier and encoding for ?intensity=
func (h *Handler) Classify(c *fiber.Ctx) error {
	raw := c.Query("intensity")
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "intensity is required")
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) {
		return fiber.NewError(fiber.StatusBadRequest, "intensity must be a number")
	}
	intensity := utils.Clamp(parsed, 0, 1)

	return c.JSON(fiber.Map{
		"success":   true,
		"intensity": intensity,
		"data":      hotspot.Classify(intensity),
	})
}

// GetAnalytics returns the dashboard aggregates
func (h *Handler) GetAnalytics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.analytics.GetSummary(),
	})
}

// RefreshRecords reloads the record set and pushes it to every session
func (h *Handler) RefreshRecords(c *fiber.Ctx) error {
	snap, err := h.records.Refresh(c.Context())
	if err != nil {
		zap.L().Error("record refresh failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Failed to refresh records")
	}
	updated := h.sessions.Publish(snap)

	return c.JSON(fiber.Map{
		"success":          true,
		"version":          snap.Version,
		"diagnostics":      h.records.Diagnostics(),
		"sessions_updated": updated,
	})
}

// CreateSession mounts a new map session
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	sess := h.sessions.Mount(c.Context())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sess.Frame(),
	})
}

// GetSession returns the current frame of a session
func (h *Handler) GetSession(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return sessionError(err)
	}
	return frameJSON(c, sess.Frame())
}

// DeleteSession unmounts a session
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.sessions.Unmount(c.Params("id")); err != nil {
		return sessionError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PostEvent dispatches a pointer or panel event into a session
func (h *Handler) PostEvent(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return sessionError(err)
	}

	var ev domain.Event
	if err := c.BodyParser(&ev); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	frame, err := sess.Dispatch(ev, timeNow())
	if err != nil {
		return sessionError(err)
	}
	return frameJSON(c, frame)
}

// RefreshSession reloads records for one session
func (h *Handler) RefreshSession(c *fiber.Ctx) error {
	frame, err := h.sessions.Refresh(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return sessionError(err)
		}
		zap.L().Error("session refresh failed", zap.String("session", c.Params("id")), zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Failed to refresh records")
	}
	return frameJSON(c, frame)
}

// Control invokes a viewport capability: recenter or toggle-overlays
func (h *Handler) Control(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return sessionError(err)
	}

	switch c.Params("control") {
	case "recenter":
		return frameJSON(c, sess.Recenter(timeNow()))
	case "toggle-overlays":
		return frameJSON(c, sess.ToggleOverlays(timeNow()))
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Unknown control")
	}
}

func frameJSON(c *fiber.Ctx, frame service.Frame) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    frame,
	})
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrInvalidEvent):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}
