package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"farm/config"
	"farm/database"
	"farm/router"

	// Record store + session
	"farm/pkg/session"
	storeRepo "farm/pkg/store/repository"
	storeRepoImp "farm/pkg/store/repositoryImp"
	storeSvcImp "farm/pkg/store/serviceImp"

	// Modules
	plannerCtrlImp "farm/pkg/planner/controllerImp"
	plannerSvcImp "farm/pkg/planner/serviceImp"
	revenueCtrlImp "farm/pkg/revenue/controllerImp"
	revenueSvcImp "farm/pkg/revenue/serviceImp"
	trackerCtrlImp "farm/pkg/tracker/controllerImp"
	trackerSvcImp "farm/pkg/tracker/serviceImp"

	// Cross-cutting
	dashboardCtrlImp "farm/pkg/dashboard/controllerImp"
	exportCtrlImp "farm/pkg/export/controllerImp"
	exportSvcImp "farm/pkg/export/serviceImp"
	healthCtrlImp "farm/pkg/health/controllerImp"
	"farm/pkg/static"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) Record store backend
	var backend storeRepo.Backend
	switch cfg.StoreDriver {
	case "sqlite":
		backend = storeRepoImp.NewSQLite(database.OpenSQLite(cfg.DBPath), cfg.DBPath)
	default:
		backend = storeRepoImp.NewFile(cfg.DataDir)
	}
	store := storeSvcImp.New(backend)
	if err := store.Ping(); err != nil {
		log.Printf("[store] backend not usable yet: %v", err)
	}

	// 3) Session state, loaded once
	st := session.Load(store, time.Now)

	// 4) Services
	planner := plannerSvcImp.New(st, cfg.StrictLabels)
	tracker := trackerSvcImp.New(st)
	revenue := revenueSvcImp.New(st, cfg.StrictLabels)
	exporter := exportSvcImp.New(st, revenue)

	// 5) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMiddleware.LoggerWithConfig(echoMiddleware.LoggerConfig{
		Format: "[http] ${time_rfc3339} ${id} ${method} ${uri} ${status} ${latency_human}\n",
	}))

	router.New(
		e,
		cfg.RateLimit,
		healthCtrlImp.NewHealthCtrl(store, cfg.StoreDriver),
		static.New(cfg.StaticDir),
		dashboardCtrlImp.New(st),
		plannerCtrlImp.New(planner),
		trackerCtrlImp.New(tracker),
		revenueCtrlImp.New(revenue),
		exportCtrlImp.New(exporter, time.Now),
	)

	// 6) Listen, scanning upward when the port is taken
	ln, err := static.Listen(cfg.Host, cfg.Port, cfg.PortScan)
	if err != nil {
		log.Fatal(err)
	}
	e.Listener = ln
	log.Printf("farm records listening on http://%s", ln.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
