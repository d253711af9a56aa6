package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof handlers
	"os"

	echoapi "github.com/Sagar-Ghorade/SmartEdu/apps/api/echo"
	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
	"github.com/Sagar-Ghorade/SmartEdu/core/report"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	cachesvc "github.com/Sagar-Ghorade/SmartEdu/services/cache"
	emailsvc "github.com/Sagar-Ghorade/SmartEdu/services/email"
	logsvc "github.com/Sagar-Ghorade/SmartEdu/services/logger"
	"github.com/Sagar-Ghorade/SmartEdu/storage/database"
	sqlxrepos "github.com/Sagar-Ghorade/SmartEdu/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Fatal("Failed to close DB", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	var statsCache report.Cache
	if conf.Redis.Addr != "" {
		redisCache := cachesvc.NewRedisStatsCache(conf)
		if err = redisCache.Ping(context.Background()); err != nil {
			logger.Fatal(fmt.Sprintf("pinging redis: %v", err), err)
		}
		defer func() { _ = redisCache.Close() }()
		statsCache = redisCache
	}

	catalogRepo := sqlxrepos.NewCatalogRepository(db.DB)
	enrollRepo := sqlxrepos.NewEnrollmentRepository(db.DB)

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db.DB), mailSvc, conf)
	catalogSvc := catalog.NewService(catalogRepo)
	enrollSvc := enrollment.NewService(db, enrollRepo, catalogRepo)
	paymentSvc := payment.NewService(db, sqlxrepos.NewPaymentRepository(db.DB), enrollRepo)
	resultSvc := result.NewService(db, sqlxrepos.NewResultRepository(db.DB), catalogRepo)
	reportSvc := report.NewService(sqlxrepos.NewReportRepository(db.DB), statsCache, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		conf.ServerAddress(),
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			CatalogSvc: catalogSvc,
			EnrollSvc:  enrollSvc,
			PaymentSvc: paymentSvc,
			ResultSvc:  resultSvc,
			ReportSvc:  reportSvc,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*database.AppDB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
