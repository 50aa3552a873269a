package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core/assistant"
)

type assistantApi struct {
	svc      *assistant.Service
	validate *validator.Validate
}

func registerAssistantAPI(g *echo.Group, svc *assistant.Service, validate *validator.Validate) {
	api := assistantApi{svc: svc, validate: validate}

	ag := g.Group("/assistant")
	ag.POST("/explain", api.explain)

	pg := ag.Group("/panels")
	pg.POST("", api.createPanel)
	pg.GET("/:id", api.retrievePanel)
	pg.DELETE("/:id", api.closePanel)
	pg.POST("/:id/selection", api.selectText)
	pg.DELETE("/:id/selection", api.clearSelection)
	pg.POST("/:id/open", api.openPanel)
}

// Handlers

func (api *assistantApi) explain(ctx echo.Context) error {
	var data assistant.ExplainRequest
	if err := bind(ctx, api.validate, &data, "assistant.ExplainRequest"); err != nil {
		return err
	}
	exp, err := api.svc.Explain(ctx.Request().Context(), data.Text)
	if err != nil {
		return errors.Wrap(err, "explaining")
	}
	return ctx.JSON(http.StatusOK, exp)
}

func (api *assistantApi) createPanel(ctx echo.Context) error {
	view, err := api.svc.NewPanel()
	if err != nil {
		return errors.Wrap(err, "creating panel")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *assistantApi) retrievePanel(ctx echo.Context) error {
	view, err := api.svc.GetPanel(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *assistantApi) closePanel(ctx echo.Context) error {
	if err := api.svc.ClosePanel(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assistantApi) selectText(ctx echo.Context) error {
	var data assistant.SelectionRequest
	if err := bind(ctx, api.validate, &data, "assistant.SelectionRequest"); err != nil {
		return err
	}
	view, err := api.svc.Select(ctx.Param("id"), data.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusAccepted, view)
}

func (api *assistantApi) clearSelection(ctx echo.Context) error {
	view, err := api.svc.Clear(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *assistantApi) openPanel(ctx echo.Context) error {
	view, err := api.svc.Open(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "opening panel")
	}
	return ctx.JSON(http.StatusOK, view)
}
