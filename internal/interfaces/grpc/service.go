package grpc_interface

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
	grpc_handler "github.com/vulpemventures/coinpurse/internal/interfaces/grpc/handler"
	"github.com/vulpemventures/coinpurse/internal/interfaces/grpc/interceptor"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

type service struct {
	config                   ServiceConfig
	appConfig                *appconfig.AppConfig
	grpcServer               *grpc.Server
	chCloseStreamConnections chan (struct{})

	log func(format string, a ...interface{})
}

func NewService(config ServiceConfig, appConfig *appconfig.AppConfig) (*service, error) {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("grpc service: %s", format)
		log.Infof(format, a...)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	if !config.insecure() && !config.withCustomKeyPair() {
		if err := generateTLSKeyPair(
			config.TLSLocation, config.ExtraIPs, config.ExtraDomains,
		); err != nil {
			return nil, fmt.Errorf("error while creating TLS keypair: %s", err)
		}
		logFn("using TLS keypair in path %s", config.TLSLocation)
	}
	chCloseStreamConnections := make(chan struct{})
	return &service{
		config, appConfig, nil, chCloseStreamConnections, logFn,
	}, nil
}

func (s *service) Start() error {
	srv, err := s.start()
	if err != nil {
		return err
	}

	s.log("start listening on %s", s.config.address())

	s.grpcServer = srv
	return nil
}

func (s *service) Stop() {
	s.stop()
	s.log("shutdown")
}

func (s *service) start() (*grpc.Server, error) {
	grpcConfig := []grpc.ServerOption{
		interceptor.UnaryInterceptor(), interceptor.StreamInterceptor(),
	}
	if !s.config.insecure() {
		tlsConfig, err := s.config.TLSConfig()
		if err != nil {
			return nil, err
		}
		grpcConfig = append(grpcConfig, grpc.Creds(credentials.NewTLS(tlsConfig)))
	}

	lis, err := s.config.listener()
	if err != nil {
		return nil, err
	}

	grpcServer := grpc.NewServer(grpcConfig...)

	walletHandler := grpc_handler.NewWalletHandler(s.appConfig.WalletService())
	calculatorHandler := grpc_handler.NewCalculatorHandler(
		s.appConfig.CalculatorService(),
	)
	historyHandler := grpc_handler.NewHistoryHandler(s.appConfig.HistoryService())
	notifyHandler := grpc_handler.NewNotificationHandler(
		s.appConfig.NotificationService(), s.chCloseStreamConnections,
	)

	pb.RegisterWalletServiceServer(grpcServer, walletHandler)
	pb.RegisterCalculatorServiceServer(grpcServer, calculatorHandler)
	pb.RegisterHistoryServiceServer(grpcServer, historyHandler)
	pb.RegisterNotificationServiceServer(grpcServer, notifyHandler)
	s.log("registered wallet handler on public interface")
	s.log("registered calculator handler on public interface")
	s.log("registered history handler on public interface")
	s.log("registered notification handler on public interface")

	go grpcServer.Serve(lis)

	return grpcServer, nil
}

func (s *service) stop() {
	close(s.chCloseStreamConnections)
	s.log("closed stream connections")

	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
		s.log("stopped grpc server")
	}
}
