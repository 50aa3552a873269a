package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/fluidlab/core/catalog"
)

type catalogApi struct {
	catalog *catalog.Catalog
}

func registerCatalogAPI(g *echo.Group, cat *catalog.Catalog) {
	api := catalogApi{catalog: cat}

	eg := g.Group("/experiments")
	eg.GET("", api.list)
	eg.GET("/:id", api.retrieve)
}

func (api *catalogApi) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.catalog.List())
}

func (api *catalogApi) retrieve(ctx echo.Context) error {
	exp, err := api.catalog.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exp)
}
