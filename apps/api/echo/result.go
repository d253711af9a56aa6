package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core/result"
)

type resultApi struct {
	svc *result.Service
}

func registerResultAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *result.Service) {
	api := resultApi{svc: svc}

	rg := g.Group("/results", jwt)
	rg.POST("", api.create)
	rg.GET("/my", api.queryMine)
}

// Handlers

func (api *resultApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data result.NewResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResult")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Submit(ctx.Request().Context(), claims.UserID(), data)
	if err != nil {
		return errors.Wrap(err, "submitting result")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *resultApi) queryMine(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	results, err := api.svc.ListMine(ctx.Request().Context(), claims.UserID())
	if err != nil {
		return errors.Wrap(err, "listing results")
	}
	return ctx.JSON(http.StatusOK, results)
}
