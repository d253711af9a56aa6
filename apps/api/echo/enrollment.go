package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
)

type enrollmentApi struct {
	svc *enrollment.Service
}

func registerEnrollmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *enrollment.Service) {
	api := enrollmentApi{svc: svc}

	eg := g.Group("/enrollments", jwt)
	eg.POST("", api.create)
	eg.GET("/my", api.queryMine)
}

// Handlers

func (api *enrollmentApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data enrollment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	enr, err := api.svc.Enroll(ctx.Request().Context(), claims.UserID(), data)
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusCreated, EnrollResponse{
		EnrollmentID: enr.ID,
		ClassID:      enr.ClassID,
		SubjectID:    enr.SubjectID,
	})
}

type EnrollResponse struct {
	EnrollmentID int  `json:"enrollmentId"`
	ClassID      int  `json:"class_id"`
	SubjectID    *int `json:"subject_id"`
}

func (api *enrollmentApi) queryMine(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	enrollments, err := api.svc.ListMine(ctx.Request().Context(), claims.UserID())
	if err != nil {
		return errors.Wrap(err, "listing enrollments")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}
