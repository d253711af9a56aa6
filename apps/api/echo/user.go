package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

type authApi struct {
	svc *user.Service
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")

	// un-authed endpoints
	// TODO: rate limit `/password-reset` & `/password-reset-confirm`
	ag.POST("/register", api.register)
	ag.POST("/login", api.login)
	ag.POST("/password-reset", api.resetPassword)
	ag.POST("/password-reset-confirm", api.confirmPasswordReset)

	// authed endpoints
	ag.GET("/me", api.me, jwt)
}

// Handlers

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound:
			return user.ErrNotFound
		case user.ErrInvalidPassword:
			return errInvalidCredentials
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api *authApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		if core.IsNotFound(err) {
			return user.ErrNotFound
		}
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.RequestPasswordReset(ctx.Request().Context(), data.Email); !(err == nil || core.IsNotFound(err)) {
		// do not return errors to attackers
		ctx.Logger().Errorf("%+v", errors.Wrap(err, "requesting password reset"))
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})
}

func (api *authApi) confirmPasswordReset(ctx echo.Context) error {
	var data user.ResetUserPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetUserPassword")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.ResetPassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password has been reset with the new password."})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}

func (pr *PasswordResetRequest) Validate() error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return core.Validate.Struct(pr)
}
