package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"

	"walletapp/app/accessory"
	"walletapp/app/auth"
	"walletapp/app/config"
	"walletapp/app/confirmation"
	"walletapp/app/feepolicy"
	"walletapp/app/notifier"
	"walletapp/app/permission"
	"walletapp/app/resolver"
	"walletapp/app/server"
	"walletapp/app/storage/database"
	"walletapp/app/transfer"
	"walletapp/app/viewmodel"
	"walletapp/pkg/log"
	"walletapp/pkg/web"
	webware "walletapp/pkg/web/middleware"
)

const (
	maxRequestsAllowed    = 10000
	serverShutdownTimeout = 30 * time.Second

	transferTimeout   = 30 * time.Second
	permissionTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		panic(err)
	}

	zlog := log.ConfigureLogger(cfg.Logging)
	defer func() {
		_ = zlog.Sync() // flush the logger
	}()

	// connect to the database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = db.Close()
	}()

	transferSvc := &transfer.Manager{
		Config: cfg.WalletCore,
		HttpClient: &http.Client{
			Timeout: transferTimeout,
		},
	}
	permissionSvc := &permission.Manager{
		Config: cfg.Notifications,
		HttpClient: &http.Client{
			Timeout: permissionTimeout,
		},
	}

	notifierSvc := notifier.NewManager()

	viewModelSvc := &viewmodel.Manager{
		Resolver:  resolver.NewManager(cfg.Assets),
		FeePolicy: &feepolicy.Manager{Config: cfg.FeeDisplay},
		Accessory: &accessory.Manager{Icon: cfg.AccessoryIcon},
	}

	confirmationSvc := confirmation.NewManager(
		viewModelSvc,
		transferSvc,
		permissionSvc,
		notifierSvc,
		db,
		cfg.Secrets,
		confirmation.NewNotifierViewFactory(notifierSvc),
	)

	router := newRouter()
	authSvc := &auth.Manager{
		JWTAuth: jwtauth.New("HS256", []byte(cfg.Secrets.Token), nil),
		Secrets: cfg.Secrets,
	}
	rest := server.Rest{
		Router:       router,
		Auth:         authSvc,
		Notifier:     notifierSvc,
		Confirmation: confirmationSvc,
	}
	rest.Route() // handle http requests

	// start notifier an http server and remember to shut it down
	srv := &http.Server{
		Addr:    cfg.RestAddr,
		Handler: router,
	}
	go notifierSvc.Start()
	defer notifierSvc.Stop()
	go web.Start(srv)
	defer web.Shutdown(srv, serverShutdownTimeout)

	// wait for the program exit
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit
}

func newRouter() chi.Router {
	router := chi.NewRouter()

	// add middleware
	router.Use(
		middleware.Throttle(maxRequestsAllowed),
		middleware.RealIP,
		webware.ZapLogger,
		webware.Recoverer,
	)

	return router
}
