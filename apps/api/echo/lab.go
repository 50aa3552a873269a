package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core/lab"
)

type labApi struct {
	svc      *lab.Service
	validate *validator.Validate
}

func registerLabAPI(g *echo.Group, svc *lab.Service, validate *validator.Validate) {
	api := labApi{svc: svc, validate: validate}

	lg := g.Group("/labs")
	lg.POST("", api.start)

	dg := lg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.cancel)
	dg.POST("/oven", api.setOven)
	dg.POST("/reset", api.reset)
	dg.POST("/stations/:station/hover", api.hover)
	dg.POST("/stations/:station/leave", api.leave)
	dg.POST("/stations/:station/drop", api.drop)
}

// Handlers

func (api *labApi) start(ctx echo.Context) error {
	var data lab.StartRequest
	if err := bind(ctx, api.validate, &data, "lab.StartRequest"); err != nil {
		return err
	}
	run, err := api.svc.Start(data.ExperimentID)
	if err != nil {
		return errors.Wrap(err, "starting lab run")
	}
	return ctx.JSON(http.StatusCreated, run)
}

func (api *labApi) retrieve(ctx echo.Context) error {
	run, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}

func (api *labApi) cancel(ctx echo.Context) error {
	run, err := api.svc.Cancel(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}

func (api *labApi) reset(ctx echo.Context) error {
	run, err := api.svc.Reset(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}

func (api *labApi) setOven(ctx echo.Context) error {
	var data lab.OvenParameters
	if err := bind(ctx, api.validate, &data, "lab.OvenParameters"); err != nil {
		return err
	}
	run, err := api.svc.SetOvenParameters(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}

func (api *labApi) hover(ctx echo.Context) error {
	kind, err := lab.ParseStationKind(ctx.Param("station"))
	if err != nil {
		return err
	}
	run, err := api.svc.Hover(ctx.Param("id"), kind)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}

func (api *labApi) leave(ctx echo.Context) error {
	kind, err := lab.ParseStationKind(ctx.Param("station"))
	if err != nil {
		return err
	}
	run, err := api.svc.Leave(ctx.Param("id"), kind)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}

func (api *labApi) drop(ctx echo.Context) error {
	kind, err := lab.ParseStationKind(ctx.Param("station"))
	if err != nil {
		return err
	}
	var data lab.DropRequest
	if err = bind(ctx, api.validate, &data, "lab.DropRequest"); err != nil {
		return err
	}
	run, err := api.svc.Drop(ctx.Param("id"), kind, data.Item)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, run)
}
