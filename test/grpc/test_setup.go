package grpctest

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/suite"
	pb "github.com/vulpemventures/coinpurse/api-spec/coinpurse/v1"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/interfaces"
	grpc_interface "github.com/vulpemventures/coinpurse/internal/interfaces/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const port = 18100

var (
	address = fmt.Sprintf("localhost:%d", port)
	ctx     = context.Background()
)

type GrpcTestSuite struct {
	suite.Suite

	svc    *interfaces.ServiceManager
	conn   *grpc.ClientConn
	client *pb.Client
}

func (g *GrpcTestSuite) SetupSuite() {
	serviceCfg := grpc_interface.ServiceConfig{
		Port:  port,
		NoTLS: true,
	}
	appCfg := &appconfig.AppConfig{
		Version:         "test",
		DefaultStrategy: domain.MaxFirst,
		MinFirstLimit:   3,
		RepoManagerType: "inmemory",
	}
	g.Require().NoError(appCfg.Validate())

	svc, err := interfaces.NewServiceManager(serviceCfg, 0, appCfg)
	g.Require().NoError(err)
	g.Require().NoError(svc.Start())
	g.svc = svc

	conn, err := grpc.Dial(
		address, grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	g.Require().NoError(err)
	g.conn = conn
	g.client = pb.NewClient(conn)
}

func (g *GrpcTestSuite) TearDownSuite() {
	if g.conn != nil {
		g.conn.Close()
	}
	if g.svc != nil {
		g.svc.Stop()
	}
}
