package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Overview)
	api.GET("/patients/:id/chart", h.Chart)
}

func (h *Handler) Overview(c echo.Context) error {
	ov, err := h.svc.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ov)
}

func (h *Handler) Chart(c echo.Context) error {
	ch, err := h.svc.Chart(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ch)
}
