package interfaces

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
	grpc_interface "github.com/vulpemventures/coinpurse/internal/interfaces/grpc"
	rest_interface "github.com/vulpemventures/coinpurse/internal/interfaces/rest"
	"golang.org/x/sync/errgroup"
)

// Service interface defines the methods that every kind of interface, whether
// gRPC, REST, or whatever must be compliant with.
type Service interface {
	Start() error
	Stop()
}

// ServiceManager starts and stops all the interfaces exposed by the daemon,
// sharing the same application services.
type ServiceManager struct {
	appConfig *appconfig.AppConfig
	services  []Service
}

// NewServiceManager returns a manager for the gRPC service and, if its port
// is set, the REST gateway.
func NewServiceManager(
	grpcConfig grpc_interface.ServiceConfig, restPort int,
	appConfig *appconfig.AppConfig,
) (*ServiceManager, error) {
	grpcSvc, err := grpc_interface.NewService(grpcConfig, appConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initalize grpc service: %s", err)
	}
	services := []Service{grpcSvc}

	if restPort > 0 {
		tlsConfig, err := grpcConfig.TLSConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load tls config: %s", err)
		}
		restSvc, err := rest_interface.NewService(rest_interface.ServiceConfig{
			Port:      restPort,
			TLSConfig: tlsConfig,
		}, appConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to initalize rest service: %s", err)
		}
		services = append(services, restSvc)
	}

	return &ServiceManager{appConfig, services}, nil
}

func (m *ServiceManager) Start() error {
	g := new(errgroup.Group)
	for _, svc := range m.services {
		g.Go(svc.Start)
	}
	return g.Wait()
}

// Stop stops all services in reverse order, then closes the connections
// with the db and the event broker.
func (m *ServiceManager) Stop() {
	for i := len(m.services) - 1; i >= 0; i-- {
		m.services[i].Stop()
	}
	m.appConfig.Close()
	log.Info("service manager: closed connection with db")
}
