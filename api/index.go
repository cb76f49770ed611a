package handler

import (
	"context"
	"net/http"
	"sync"

	"courtbook/config"
	"courtbook/di"
	"courtbook/shared/logger"
	"courtbook/transport/http/response"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

// setup builds the router once per warm instance. Snapshots are loaded on
// demand; the scheduler and the peer listener only run in the long-lived
// server.
func setup() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	app, err := di.InitializeApp()
	if err != nil {
		initErr = err

		return
	}

	if err := app.Store.Refresh(context.Background()); err != nil {
		initErr = err

		return
	}

	handler = app.HTTP.Handler()
}

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(setup)

	if initErr != nil {
		response.WithError(w, initErr)

		return
	}

	handler.ServeHTTP(w, r)
}
