package handler

import (
	"errors"
	"net/http"

	"github.com/eventpass/attendance-service/internal/dto"
	"github.com/eventpass/attendance-service/internal/middleware"
	"github.com/eventpass/attendance-service/internal/models"
	"github.com/eventpass/attendance-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AssistanceHandler struct {
	admission  service.AdmissionService
	attendance service.AttendanceService
}

func NewAssistanceHandler(admission service.AdmissionService, attendance service.AttendanceService) *AssistanceHandler {
	return &AssistanceHandler{admission: admission, attendance: attendance}
}

// RegisterRoutes wires the registration surface. authed requires a valid
// token, staff additionally requires the presenter or admin role. The
// code-based check-in route is deliberately public: the scanned QR code is
// the capability.
func (h *AssistanceHandler) RegisterRoutes(api *echo.Group, authed, staff echo.MiddlewareFunc) {
	events := api.Group("/events")
	events.POST("/:id/registrations", h.Register, authed)
	events.GET("/:id/registrations", h.ListRegistrations, authed, staff)

	registrations := api.Group("/registrations")
	registrations.GET("/:id", h.GetRegistration, authed)
	registrations.DELETE("/:id", h.Cancel, authed)
	registrations.PATCH("/:id/status", h.UpdateStatus, authed, staff)
	registrations.POST("/:id/checkin", h.CheckIn, authed, staff)

	api.POST("/checkin/:code", h.CheckInByCode)
}

func (h *AssistanceHandler) Register(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	assistance, err := h.admission.Register(c.Request().Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEventAlreadyOccurred):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadyRegistered):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrCapacityExceeded):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToAssistanceResponse(assistance))
}

func (h *AssistanceHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	assistance, err := h.attendance.Cancel(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistanceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAssistanceResponse(assistance))
}

func (h *AssistanceHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assistance, err := h.attendance.UpdateStatus(c.Request().Context(), id, models.AssistanceStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistanceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrCancelledRegistration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAssistanceResponse(assistance))
}

func (h *AssistanceHandler) CheckIn(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	assistance, err := h.attendance.CheckIn(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistanceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCancelledRegistration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAssistanceResponse(assistance))
}

func (h *AssistanceHandler) CheckInByCode(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing check-in code")
	}

	assistance, err := h.attendance.CheckInByCode(c.Request().Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistanceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCancelledRegistration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAssistanceResponse(assistance))
}

func (h *AssistanceHandler) GetRegistration(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration id")
	}

	assistance, err := h.attendance.GetAssistance(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAssistanceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToAssistanceResponse(assistance))
}

func (h *AssistanceHandler) ListRegistrations(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var status *models.AssistanceStatus
	if s := c.QueryParam("status"); s != "" {
		as := models.AssistanceStatus(s)
		if !models.ValidStatus(as) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		status = &as
	}

	assistances, err := h.attendance.ListByEvent(c.Request().Context(), eventID, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.AssistanceResponse, len(assistances))
	for i, a := range assistances {
		resp[i] = dto.ToAssistanceResponse(&a)
	}

	return c.JSON(http.StatusOK, resp)
}
