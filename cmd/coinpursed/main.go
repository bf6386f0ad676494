package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
	"github.com/vulpemventures/coinpurse/internal/config"
	postgresdb "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/postgres"
	"github.com/vulpemventures/coinpurse/internal/interfaces"
	grpc_interface "github.com/vulpemventures/coinpurse/internal/interfaces/grpc"
	"github.com/vulpemventures/coinpurse/pkg/profiler"
)

var (
	// Build info.
	version string
	commit  string
	date    string

	// Config from env vars.
	dbType            = config.GetString(config.DatabaseTypeKey)
	logLevel          = config.GetInt(config.LogLevelKey)
	datadir           = config.GetDatadir()
	port              = config.GetInt(config.PortKey)
	restPort          = config.GetInt(config.RestPortKey)
	profilerPort      = config.GetInt(config.ProfilerPortKey)
	noTLS             = config.GetBool(config.NoTLSKey)
	noRest            = config.GetBool(config.NoRestKey)
	noProfiler        = config.GetBool(config.NoProfilerKey)
	tlsCertFile       = config.GetString(config.TLSCertKey)
	tlsKeyFile        = config.GetString(config.TLSKeyKey)
	dbDir             = config.GetDbDir()
	tlsDir            = config.GetTLSDir()
	profilerDir       = filepath.Join(datadir, config.ProfilerLocation)
	statsInterval     = time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	defaultStrategy   = config.GetDefaultStrategy()
	minFirstLimit     = config.GetInt(config.MinFirstLimitKey)
	minFirstMaxVisits = config.GetInt(config.MinFirstMaxVisitsKey)
	amqpUrl           = config.GetString(config.AmqpUrlKey)
	amqpExchange      = config.GetString(config.AmqpExchangeKey)
	amqpRoutingKey    = config.GetString(config.AmqpRoutingKeyKey)
	dbUser            = config.GetString(config.DbUserKey)
	dbPassword        = config.GetString(config.DbPassKey)
	dbHost            = config.GetString(config.DbHostKey)
	dbPort            = config.GetInt(config.DbPortKey)
	dbName            = config.GetString(config.DbNameKey)
	migrationSrcURL   = config.GetString(config.DbMigrationPath)
)

func main() {
	log.SetLevel(log.Level(logLevel))

	if profilerEnabled := !noProfiler; profilerEnabled {
		profilerSvc, err := profiler.NewService(profiler.ServiceOpts{
			Port:          profilerPort,
			StatsInterval: statsInterval,
			Datadir:       profilerDir,
		})
		if err != nil {
			log.WithError(err).Fatal("profiler: error while starting")
		}

		profilerSvc.Start()
		defer func() {
			profilerSvc.Stop()
		}()
	}

	serviceCfg := grpc_interface.ServiceConfig{
		Port:        port,
		NoTLS:       noTLS,
		TLSLocation: tlsDir,
		TLSCertFile: tlsCertFile,
		TLSKeyFile:  tlsKeyFile,
	}
	appCfg := &appconfig.AppConfig{
		Version:           version,
		Commit:            commit,
		Date:              date,
		DefaultStrategy:   defaultStrategy,
		MinFirstLimit:     minFirstLimit,
		MinFirstMaxVisits: minFirstMaxVisits,
		RepoManagerType:   dbType,
		RepoManagerConfig: repoManagerConfig(),
	}
	if amqpUrl != "" {
		appCfg.AmqpConfig = &appconfig.AmqpConfig{
			URL:        amqpUrl,
			Exchange:   amqpExchange,
			RoutingKey: amqpRoutingKey,
		}
	}

	if noRest {
		restPort = 0
	}
	serviceManager, err := interfaces.NewServiceManager(serviceCfg, restPort, appCfg)
	if err != nil {
		log.WithError(err).Fatal("service: error while initializing")
	}
	defer func() {
		serviceManager.Stop()
	}()

	if err := serviceManager.Start(); err != nil {
		log.WithError(err).Error("service: error while starting")
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
}

func repoManagerConfig() interface{} {
	switch dbType {
	case "postgres":
		return postgresdb.DbConfig{
			DbUser:             dbUser,
			DbPassword:         dbPassword,
			DbHost:             dbHost,
			DbPort:             dbPort,
			DbName:             dbName,
			MigrationSourceURL: migrationSrcURL,
		}
	case "sqlite":
		return filepath.Join(dbDir, config.SqliteFile)
	case "inmemory":
		return nil
	default:
		return dbDir
	}
}
