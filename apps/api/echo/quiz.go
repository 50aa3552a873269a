package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/fluidlab/core/quiz"
)

type quizApi struct {
	svc      *quiz.Service
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, svc *quiz.Service, validate *validator.Validate) {
	api := quizApi{svc: svc, validate: validate}

	g.GET("/quizzes", api.list)
	g.POST("/quizzes/:experiment/attempts", api.start)

	ag := g.Group("/attempts/:id")
	ag.GET("", api.retrieve)
	ag.POST("/answer", api.answer)
	ag.POST("/explanation", api.toggleExplanation)
	ag.POST("/next", api.next)
	ag.POST("/restart", api.restart)
}

// Handlers

func (api *quizApi) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Banks())
}

func (api *quizApi) start(ctx echo.Context) error {
	view, err := api.svc.Start(ctx.Param("experiment"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	view, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *quizApi) answer(ctx echo.Context) error {
	var data quiz.AnswerRequest
	if err := bind(ctx, api.validate, &data, "quiz.AnswerRequest"); err != nil {
		return err
	}
	view, err := api.svc.Answer(ctx.Param("id"), *data.Option)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *quizApi) toggleExplanation(ctx echo.Context) error {
	view, err := api.svc.ToggleExplanation(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *quizApi) next(ctx echo.Context) error {
	view, err := api.svc.Next(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *quizApi) restart(ctx echo.Context) error {
	view, err := api.svc.Restart(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
