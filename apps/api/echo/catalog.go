package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
)

type catalogApi struct {
	svc *catalog.Service
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *catalog.Service) {
	api := catalogApi{svc: svc}
	admin := adminMiddleware()

	g.GET("/classes", api.queryClasses)
	g.POST("/classes", api.createClass, jwt, admin)

	g.GET("/subjects/:classId", api.querySubjects)
	g.POST("/subjects", api.createSubject, jwt, admin)

	g.GET("/tests/:subjectId", api.queryTests)
	g.POST("/tests", api.createTest, jwt, admin)

	g.GET("/fees", api.queryFees, jwt, admin)
	g.POST("/fees", api.createFee, jwt, admin)
	g.GET("/fees/compute", api.computeFee, jwt)
	g.GET("/fees/estimate", api.estimateFee)
}

// Handlers

func (api *catalogApi) queryClasses(ctx echo.Context) error {
	var filter catalog.ClassFilter
	var page core.Pagination
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to ClassFilter")
	}
	if err := ctx.Bind(&page); err != nil {
		return errors.Wrap(err, "binding to Pagination")
	}

	res, err := api.svc.ListClasses(ctx.Request().Context(), filter, page)
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *catalogApi) createClass(ctx echo.Context) error {
	var data catalog.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.AddClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	classID, err := intParam(ctx, "classId")
	if err != nil {
		return err
	}

	subjects, err := api.svc.ListSubjects(ctx.Request().Context(), classID)
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *catalogApi) createSubject(ctx echo.Context) error {
	var data catalog.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sub, err := api.svc.AddSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *catalogApi) queryTests(ctx echo.Context) error {
	subjectID, err := intParam(ctx, "subjectId")
	if err != nil {
		return err
	}

	tests, err := api.svc.ListTests(ctx.Request().Context(), subjectID)
	if err != nil {
		return errors.Wrap(err, "listing tests")
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *catalogApi) createTest(ctx echo.Context) error {
	var data catalog.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tst, err := api.svc.AddTest(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding test")
	}
	return ctx.JSON(http.StatusCreated, tst)
}

func (api *catalogApi) queryFees(ctx echo.Context) error {
	fees, err := api.svc.ListFees(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing fees")
	}
	return ctx.JSON(http.StatusOK, fees)
}

func (api *catalogApi) createFee(ctx echo.Context) error {
	var data catalog.NewFee
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFee")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	fee, err := api.svc.AddFee(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding fee")
	}
	return ctx.JSON(http.StatusCreated, fee)
}

func (api *catalogApi) computeFee(ctx echo.Context) error {
	var query ComputeFeeRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to ComputeFeeRequest")
	}
	if err := query.Validate(); err != nil {
		return err
	}

	fee, ok, err := api.svc.ComputeFee(ctx.Request().Context(), query.ClassID, query.SubjectID, query.Mode)
	if err != nil {
		return errors.Wrap(err, "computing fee")
	}
	if !ok {
		return ctx.JSON(http.StatusOK, ComputeFeeResponse{
			Resolved: false,
			Message:  "No fee configured for this selection. Please contact the admin.",
		})
	}
	return ctx.JSON(http.StatusOK, ComputeFeeResponse{Resolved: true, Fee: &fee})
}

func (api *catalogApi) estimateFee(ctx echo.Context) error {
	var query catalog.Estimate
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to Estimate")
	}
	if err := query.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, EstimateFeeResponse{EstimatedAmount: query.Amount()})
}

func intParam(ctx echo.Context, name string) (int, error) {
	val, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be an integer"})
	}
	return val, nil
}

type (
	ComputeFeeRequest struct {
		ClassID   int    `query:"class_id" validate:"required"`
		SubjectID *int   `query:"subject_id"`
		Mode      string `query:"mode" validate:"required,oneof=Individual Group"`
	}

	ComputeFeeResponse struct {
		Resolved bool         `json:"resolved"`
		Fee      *catalog.Fee `json:"fee,omitempty"`
		Message  string       `json:"message,omitempty"`
	}

	EstimateFeeResponse struct {
		EstimatedAmount float64 `json:"estimated_amount"`
	}
)

func (cf *ComputeFeeRequest) Validate() error {
	cf.Mode = core.CleanString(cf.Mode)
	return core.Validate.Struct(cf)
}
