package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
	"github.com/Sagar-Ghorade/SmartEdu/core/report"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc    *user.Service
		CatalogSvc *catalog.Service
		EnrollSvc  *enrollment.Service
		PaymentSvc *payment.Service
		ResultSvc  *result.Service
		ReportSvc  *report.Service
	}

	Server struct {
		addr     string
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(addr string, deps ServerDeps) *Server {
	s := &Server{
		addr:     addr,
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(api, jwt, s.deps.UserSvc)
	registerCatalogAPI(api, jwt, s.deps.CatalogSvc)
	registerEnrollmentAPI(api, jwt, s.deps.EnrollSvc)
	registerPaymentAPI(api, jwt, s.deps.PaymentSvc)
	registerResultAPI(api, jwt, s.deps.ResultSvc)
	registerDashboardAPI(api, jwt, s.deps.ReportSvc)
}

func (s *Server) Start() {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s.errs <- s.app.Start(s.addr)
	}()
}

// Errors reports a fatal listener error.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// ShutdownSignal reports OS signals and internal shutdown requests.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown requests a graceful shutdown, as if SIGTERM was received.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to SmartEdu API!")
}
