package billing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/crud"
)

// Handler serves the billing routes: the generic record endpoints plus
// GET /billing/summary.
type Handler struct {
	*crud.Handler[Record]
	svc *crud.Service[Record]
}

func NewHandler(svc *crud.Service[Record]) *Handler {
	return &Handler{Handler: crud.NewHandler(svc, "billing", ParamStatus), svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/billing/summary", h.Summary)
	h.Handler.RegisterRoutes(api)
}

// Summary totals every record matching the patient and status filters.
func (h *Handler) Summary(c echo.Context) error {
	f := crud.FilterFromContext(c, ParamStatus)
	f.Limit, f.Offset = 0, 0
	rows, _, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Summarize(rows))
}
