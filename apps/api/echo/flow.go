package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core/flow"
)

type flowApi struct {
	svc      *flow.Service
	validate *validator.Validate
}

type verifyResponse struct {
	Calculation  flow.SavedCalculation `json:"calculation"`
	Verification flow.Verification     `json:"verification"`
}

func registerFlowAPI(g *echo.Group, svc *flow.Service, validate *validator.Validate) {
	api := flowApi{svc: svc, validate: validate}

	fg := g.Group("/flow")
	fg.POST("/calculate", api.calculate)
	fg.GET("/components", api.components)
	fg.GET("/reference", api.reference)

	wg := fg.Group("/workbenches")
	wg.POST("", api.createWorkbench)
	wg.GET("/:id", api.retrieveWorkbench)
	wg.POST("/:id/verify", api.verify)
	wg.DELETE("/:id/calculations", api.resetWorkbench)
}

// Handlers

func (api *flowApi) calculate(ctx echo.Context) error {
	var data flow.FlowParameters
	if err := bind(ctx, api.validate, &data, "flow.FlowParameters"); err != nil {
		return err
	}
	res, err := api.svc.Calculate(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *flowApi) components(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, flow.Components())
}

func (api *flowApi) reference(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, flow.ReferenceTable())
}

func (api *flowApi) createWorkbench(ctx echo.Context) error {
	wb, err := api.svc.NewWorkbench()
	if err != nil {
		return errors.Wrap(err, "creating workbench")
	}
	return ctx.JSON(http.StatusCreated, wb)
}

func (api *flowApi) retrieveWorkbench(ctx echo.Context) error {
	wb, err := api.svc.GetWorkbench(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, wb)
}

func (api *flowApi) verify(ctx echo.Context) error {
	var data flow.Submission
	if err := bind(ctx, api.validate, &data, "flow.Submission"); err != nil {
		return err
	}
	calc, ver, err := api.svc.Verify(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, verifyResponse{Calculation: calc, Verification: ver})
}

func (api *flowApi) resetWorkbench(ctx echo.Context) error {
	if err := api.svc.Reset(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
