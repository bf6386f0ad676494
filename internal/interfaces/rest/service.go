package rest_interface

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
	"golang.org/x/net/http2"
)

const (
	minPort = 1024
	maxPort = 49151

	shutdownTimeout = 5 * time.Second
)

// ServiceConfig holds the args of the REST gateway. TLS is enabled if a TLS
// config is given.
type ServiceConfig struct {
	Port      int
	TLSConfig *tls.Config
}

func (c ServiceConfig) validate() error {
	if c.Port < minPort || c.Port > maxPort {
		return fmt.Errorf("port must be in range [%d, %d]", minPort, maxPort)
	}
	return nil
}

func (c ServiceConfig) address() string {
	return fmt.Sprintf(":%d", c.Port)
}

type service struct {
	config ServiceConfig
	server *http.Server
	hub    *eventHub

	log  func(format string, a ...interface{})
	warn func(err error, format string, a ...interface{})
}

func NewService(
	config ServiceConfig, appConfig *appconfig.AppConfig,
) (*service, error) {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("rest service: %s", format)
		log.Infof(format, a...)
	}
	warnFn := func(err error, format string, a ...interface{}) {
		format = fmt.Sprintf("rest service: %s", format)
		log.WithError(err).Warnf(format, a...)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router, hub := newRouter(appConfig)
	server := &http.Server{
		Addr:              config.address(),
		Handler:           router,
		TLSConfig:         config.TLSConfig,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if config.TLSConfig != nil {
		if err := http2.ConfigureServer(server, &http2.Server{}); err != nil {
			return nil, err
		}
	}

	return &service{config, server, hub, logFn, warnFn}, nil
}

func (s *service) Start() error {
	go func() {
		var err error
		if s.config.TLSConfig != nil {
			err = s.server.ListenAndServeTLS("", "")
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.warn(err, "server stopped unexpectedly")
		}
	}()

	s.log("start listening on %s", s.config.address())
	return nil
}

func (s *service) Stop() {
	s.hub.close()
	s.log("closed websocket connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.warn(err, "failed to gracefully stop server")
	}
	s.log("shutdown")
}
