package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/totegamma/hl3mural/internal/domain"
	"github.com/totegamma/hl3mural/internal/present/rest/presenter"
	"github.com/totegamma/hl3mural/internal/usecase"
)

type Handler struct {
	submission *usecase.SubmissionUsecase
}

func NewHandler(submission *usecase.SubmissionUsecase) *Handler {
	return &Handler{
		submission: submission,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealth)
	e.GET("/submissions", h.handleSubmissions)
	// path served by the static mural page
	e.GET("/.netlify/functions/get-stories", h.handleSubmissions)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSubmissions(c echo.Context) error {
	ctx := c.Request().Context()

	perPage := c.QueryParam("per_page")
	if perPage == "" {
		perPage = c.QueryParam("limit")
	}
	req := domain.ParsePageRequest(c.QueryParam("form"), c.QueryParam("page"), perPage)

	entries, err := h.submission.List(ctx, req)
	if err != nil {
		var cerr domain.ConfigError
		if errors.As(err, &cerr) {
			return presenter.Unauthorized(c, cerr)
		}
		return presenter.InternalError(c, err)
	}

	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	header.Set(domain.HeaderPage, strconv.Itoa(req.Page))
	header.Set(domain.HeaderPerPage, strconv.Itoa(req.PerPage))

	return presenter.OK(c, entries)
}
