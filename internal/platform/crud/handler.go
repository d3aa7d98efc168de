package crud

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/errs"
	"github.com/vatsal-afk/EHR-Dashboard/internal/platform/lookup"
	"github.com/vatsal-afk/EHR-Dashboard/pkg/pagination"
)

// HeaderRecordSource reports which tier answered a read.
const HeaderRecordSource = "X-Record-Source"

// maxBodyBytes bounds PUT bodies read into memory.
const maxBodyBytes = 1 << 20

type Handler[T any] struct {
	svc    *Service[T]
	path   string
	params []string
}

// NewHandler serves svc under /<path>. params lists the extra query
// parameters copied into lookup.Filter.Params ("date", "provider").
func NewHandler[T any](svc *Service[T], path string, params ...string) *Handler[T] {
	return &Handler[T]{svc: svc, path: "/" + strings.Trim(path, "/"), params: params}
}

func (h *Handler[T]) RegisterRoutes(api *echo.Group) {
	api.GET(h.path, h.List)
	api.GET(h.path+"/table", h.Table)
	api.GET(h.path+"/:id", h.Get)
	api.POST(h.path, h.Create)
	api.PUT(h.path, h.Update)
	api.PUT(h.path+"/:id", h.Update)
	api.DELETE(h.path, h.Delete)
	api.DELETE(h.path+"/:id", h.Delete)
}

// FilterFromContext reads the list parameters shared by every resource.
func FilterFromContext(c echo.Context, params ...string) lookup.Filter {
	pg := pagination.FromContext(c)
	f := lookup.Filter{
		PatientID: c.QueryParam("patientId"),
		Search:    strings.TrimSpace(c.QueryParam("search")),
		Limit:     pg.Limit,
		Offset:    pg.Offset,
	}
	if f.PatientID == "" {
		f.PatientID = c.QueryParam("patient")
	}
	for _, p := range params {
		if v := c.QueryParam(p); v != "" {
			if f.Params == nil {
				f.Params = make(map[string]string, len(params))
			}
			f.Params[p] = v
		}
	}
	return f
}

func recordID(c echo.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.QueryParam("id")
}

func (h *Handler[T]) List(c echo.Context) error {
	rows, src, err := h.svc.List(c.Request().Context(), FilterFromContext(c, h.params...))
	if err != nil {
		return err
	}
	c.Response().Header().Set(HeaderRecordSource, string(src))
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler[T]) Table(c echo.Context) error {
	var columns []string
	if raw := c.QueryParam("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}
	tbl, src, err := h.svc.Table(c.Request().Context(), FilterFromContext(c, h.params...), columns)
	if err != nil {
		return err
	}
	c.Response().Header().Set(HeaderRecordSource, string(src))
	return c.JSON(http.StatusOK, tbl)
}

func (h *Handler[T]) Get(c echo.Context) error {
	rec, src, err := h.svc.Get(c.Request().Context(), recordID(c))
	if err != nil {
		return err
	}
	c.Response().Header().Set(HeaderRecordSource, string(src))
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler[T]) Create(c echo.Context) error {
	var rec T
	if err := c.Bind(&rec); err != nil {
		return errs.Validation("invalid request body")
	}
	if err := h.svc.Create(c.Request().Context(), &rec); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler[T]) Update(c echo.Context) error {
	id := recordID(c)
	if id == "" {
		return errs.Validation("id is required")
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return errs.Validation("invalid request body")
	}
	rec, err := h.svc.Update(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler[T]) Delete(c echo.Context) error {
	id := recordID(c)
	if id == "" {
		return errs.Validation("id is required")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
