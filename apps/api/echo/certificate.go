package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/fluidlab/core/certificate"
)

type certificateApi struct {
	svc      *certificate.Service
	validate *validator.Validate
}

func registerCertificateAPI(g *echo.Group, svc *certificate.Service, validate *validator.Validate) {
	api := certificateApi{svc: svc, validate: validate}

	cg := g.Group("/certificates")
	cg.POST("", api.issue)
	cg.GET("/:id", api.retrieve)
}

func (api *certificateApi) issue(ctx echo.Context) error {
	var data certificate.NewCertificate
	if err := bind(ctx, api.validate, &data, "certificate.NewCertificate"); err != nil {
		return err
	}
	cert, err := api.svc.Issue(data)
	if err != nil {
		return errors.Wrap(err, "issuing certificate")
	}
	return ctx.JSON(http.StatusCreated, cert)
}

func (api *certificateApi) retrieve(ctx echo.Context) error {
	cert, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cert)
}
