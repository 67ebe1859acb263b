package court

import (
	"net/http"

	"pistas/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// ListCourts godoc
// @Summary      List courts
// @Description  Returns the court catalog with prices and maintenance flags.
// @Tags         pistas
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Court
// @Failure      500  {object}  api.ErrorResponse
// @Router       /pistas [get]
func (h *Handler) ListCourts(c *gin.Context) {
	courts, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}
