package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"pistas/internal/api"
	"pistas/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateReservation godoc
// @Summary      Create reservation
// @Description  Books a court for the requested date and time range. The slot
// @Description  must be free of pending or paid reservations and the court
// @Description  must not be under maintenance.
// @Tags         reservas
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Booking request"
// @Success      201      {object}  ReservationWithCourt
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      503      {object}  api.ErrorResponse
// @Router       /reservas [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	requester, ok := auth.GetRequester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Requester not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.RequesterID = requester.DNI
	req.RequesterName = requester.Name

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// ListMyReservations godoc
// @Summary      List my reservations
// @Description  Returns the requester's reservations, newest first.
// @Tags         reservas
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ReservationWithCourt
// @Failure      503  {object}  api.ErrorResponse
// @Router       /reservas [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	requester, ok := auth.GetRequester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Requester not authenticated"})
		return
	}

	reservations, err := h.service.List(c.Request.Context(), Filter{RequesterID: requester.DNI})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// MarkPaid godoc
// @Summary      Mark reservation as paid
// @Description  Records an external payment confirmation. Only pending
// @Description  reservations can be paid.
// @Tags         reservas
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Reservation ID"
// @Success      200  {object}  ReservationWithCourt
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /reservas/{id}/pagar [post]
func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	res, err := h.service.MarkPaid(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Cancel godoc
// @Summary      Cancel reservation
// @Description  Cancels a pending or paid reservation of the requester. The
// @Description  slot becomes bookable again immediately.
// @Tags         reservas
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Reservation ID"
// @Success      200  {object}  ReservationWithCourt
// @Failure      400  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /reservas/{id}/cancelar [post]
func (h *Handler) Cancel(c *gin.Context) {
	requester, ok := auth.GetRequester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Requester not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), requester.DNI, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// AdminList godoc
// @Summary      List all reservations
// @Description  Returns reservations across all requesters, filterable by
// @Description  court and requester DNI. Admin only.
// @Tags         reservas
// @Security     BearerAuth
// @Produce      json
// @Param        pista  query     int     false  "Court ID"
// @Param        dni    query     string  false  "Requester DNI"
// @Success      200    {array}   ReservationWithCourt
// @Failure      400    {object}  api.ErrorResponse
// @Router       /admin/reservas [get]
func (h *Handler) AdminList(c *gin.Context) {
	var f Filter

	if raw := c.Query("pista"); raw != "" {
		courtID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
			return
		}
		f.CourtID = courtID
	}
	f.RequesterID = c.Query("dni")

	reservations, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// AdminDelete godoc
// @Summary      Delete reservation
// @Description  Hard-removes a reservation regardless of state. Admin only.
// @Tags         reservas
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      int  true  "Reservation ID"
// @Success      200  {object}  DeleteSummary
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/reservas/{id} [delete]
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	summary, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrBadDate),
		errors.Is(err, ErrBadTime),
		errors.Is(err, ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrCourtNotFound),
		errors.Is(err, ErrReservationNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrCourtUnavailable),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: ErrStoreUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}
