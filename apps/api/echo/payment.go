package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
)

type paymentApi struct {
	svc *payment.Service
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *payment.Service) {
	api := paymentApi{svc: svc}

	pg := g.Group("/payments", jwt)
	pg.POST("", api.create)
	pg.GET("/my", api.queryMine)
}

// Handlers

func (api *paymentApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	pmt, err := api.svc.Make(ctx.Request().Context(), claims.UserID(), data)
	if err != nil {
		return errors.Wrap(err, "making payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *paymentApi) queryMine(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	payments, err := api.svc.ListMine(ctx.Request().Context(), claims.UserID())
	if err != nil {
		return errors.Wrap(err, "listing payments")
	}
	return ctx.JSON(http.StatusOK, payments)
}
