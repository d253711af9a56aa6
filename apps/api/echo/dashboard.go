package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type dashboardApi struct {
	svc *report.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := dashboardApi{svc: svc}

	dg := g.Group("/dashboard", jwt, adminMiddleware())
	dg.GET("", api.stats)
	dg.GET("/export", api.export)
}

// Handlers

func (api *dashboardApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *dashboardApi) export(ctx echo.Context) error {
	buf, err := api.svc.Excel(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "exporting stats")
	}

	filename := "dashboard-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
