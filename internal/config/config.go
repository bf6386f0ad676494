package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

const (
	// DatadirKey is the key to customize the coinpurse datadir.
	DatadirKey = "DATADIR"
	// DatabaseTypeKey is the key to customize the type of database to use.
	DatabaseTypeKey = "DATABASE_TYPE"
	// PortKey is the key to customize the port where the gRPC server will be
	// listening to.
	PortKey = "PORT"
	// RestPortKey is the key to customize the port where the REST gateway
	// will be listening to.
	RestPortKey = "REST_PORT"
	// NoRestKey is the key to disable the REST gateway.
	NoRestKey = "NO_REST"
	// ProfilerPortKey is the key to customize the port where the profiler will
	// be listening to.
	ProfilerPortKey = "PROFILER_PORT"
	// LogLevelKey is the key to customize the log level to catch more specific
	// or more high level logs.
	LogLevelKey = "LOG_LEVEL"
	// NoTLSKey is the key to disable TLS encryption.
	NoTLSKey = "NO_TLS"
	// TLSCertKey is the key to customize the path of the TLS certificate.
	TLSCertKey = "TLS_CERT"
	// TLSKeyKey is the key to customize the path of the TLS private key.
	TLSKeyKey = "TLS_KEY"
	// NoProfilerKey is the key to disable Prometheus profiling.
	NoProfilerKey = "NO_PROFILER"
	// StatsIntervalKey is the key to customize the interval for the profiler
	// to gather profiling stats.
	StatsIntervalKey = "STATS_INTERVAL"
	// DefaultStrategyKey is the key to customize the coin selection strategy
	// used when a request doesn't specify one.
	DefaultStrategyKey = "DEFAULT_STRATEGY"
	// MinFirstLimitKey is the key to customize the number of combos collected
	// by the min-first strategy before picking one.
	MinFirstLimitKey = "MIN_FIRST_LIMIT"
	// MinFirstMaxVisitsKey is the key to bound the branches explored by the
	// min-first strategy.
	MinFirstMaxVisitsKey = "MIN_FIRST_MAX_VISITS"
	// AmqpUrlKey is the key to enable publishing spend records to an AMQP
	// broker.
	AmqpUrlKey = "AMQP_URL"
	// AmqpExchangeKey is the key to customize the AMQP exchange.
	AmqpExchangeKey = "AMQP_EXCHANGE"
	// AmqpRoutingKeyKey is the key to customize the AMQP routing key.
	AmqpRoutingKeyKey = "AMQP_ROUTING_KEY"
	// DbUserKey is user used to connect to db
	DbUserKey = "DB_USER"
	// DbPassKey is password used to connect to db
	DbPassKey = "DB_PASS"
	// DbHostKey is host where db is installed
	DbHostKey = "DB_HOST"
	// DbPortKey is port on which db is listening
	DbPortKey = "DB_PORT"
	// DbNameKey is name of database
	DbNameKey = "DB_NAME"
	// DbMigrationPath is the path to migration files
	DbMigrationPath = "DB_MIGRATION_PATH"

	// DbLocation is the folder inside the datadir containing db files.
	DbLocation = "db"
	// TLSLocation is the folder inside the datadir containing TLS key and
	// certificate.
	TLSLocation = "tls"
	// ProfilerLocation is the folder inside the datadir containing profiler
	// stats files.
	ProfilerLocation = "stats"
	// SqliteFile is the name of the sqlite db file inside the db folder.
	SqliteFile = "coinpurse.db"

	envPrefix = "COINPURSE"
)

var (
	vip *viper.Viper

	defaultDatadir         = btcutil.AppDataDir("coinpursed", false)
	defaultDbType          = "badger"
	defaultPort            = 18000
	defaultRestPort        = 18002
	defaultLogLevel        = 4
	defaultProfilerPort    = 18001
	defaultStatsInterval   = 600 // 10 minutes
	defaultStrategy        = domain.MaxFirst.String()
	defaultMinFirstLimit   = 3
	defaultMinFirstVisits  = 1000000
	defaultAmqpExchange    = "coinpurse"
	defaultAmqpRoutingKey  = "spend_records"
	defaultDbMigrationPath = "file://internal/infrastructure/storage/db/postgres/migration"

	SupportedDbs = supportedType{
		"badger":   {},
		"inmemory": {},
		"postgres": {},
		"sqlite":   {},
	}
)

func init() {
	// A missing .env file is not an error, env vars can be set otherwise.
	if err := godotenv.Load(); err == nil {
		log.Debug("config: loaded env vars from .env file")
	}

	vip = viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.AutomaticEnv()
	setDefaults()

	if err := validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	if err := initDatadir(); err != nil {
		log.Fatalf("config: error while creating datadir: %s", err)
	}
}

func setDefaults() {
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DatabaseTypeKey, defaultDbType)
	vip.SetDefault(PortKey, defaultPort)
	vip.SetDefault(RestPortKey, defaultRestPort)
	vip.SetDefault(NoRestKey, false)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(NoTLSKey, false)
	vip.SetDefault(NoProfilerKey, false)
	vip.SetDefault(ProfilerPortKey, defaultProfilerPort)
	vip.SetDefault(StatsIntervalKey, defaultStatsInterval)
	vip.SetDefault(DefaultStrategyKey, defaultStrategy)
	vip.SetDefault(MinFirstLimitKey, defaultMinFirstLimit)
	vip.SetDefault(MinFirstMaxVisitsKey, defaultMinFirstVisits)
	vip.SetDefault(AmqpExchangeKey, defaultAmqpExchange)
	vip.SetDefault(AmqpRoutingKeyKey, defaultAmqpRoutingKey)
	vip.SetDefault(DbUserKey, "root")
	vip.SetDefault(DbPassKey, "secret")
	vip.SetDefault(DbHostKey, "127.0.0.1")
	vip.SetDefault(DbPortKey, 5432)
	vip.SetDefault(DbNameKey, "coinpurse-db-pg")
	vip.SetDefault(DbMigrationPath, defaultDbMigrationPath)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	dbType := GetString(DatabaseTypeKey)
	if _, ok := SupportedDbs[dbType]; !ok {
		return fmt.Errorf("unsupported database type, must be one of %s", SupportedDbs)
	}

	if _, err := domain.ParseCoinSelectionStrategy(
		GetString(DefaultStrategyKey),
	); err != nil {
		return fmt.Errorf(
			"%s, must be one of %s", err,
			strings.Join(domain.CoinSelectionStrategies(), " | "),
		)
	}

	if limit := GetInt(MinFirstLimitKey); limit <= 0 {
		return fmt.Errorf("min-first limit must be a positive number")
	}

	noTls := GetBool(NoTLSKey)
	if !noTls {
		certFile, keyFile := GetString(TLSCertKey), GetString(TLSKeyKey)
		if (certFile == "") != (keyFile == "") {
			return fmt.Errorf("tls cert and key must be either both set or unset")
		}
	}

	port := GetInt(PortKey)
	noRest := GetBool(NoRestKey)
	if !noRest {
		if port == GetInt(RestPortKey) {
			return fmt.Errorf("port and rest port must not be equal")
		}
	}
	noProfiler := GetBool(NoProfilerKey)
	if !noProfiler {
		profilerPort := GetInt(ProfilerPortKey)
		if port == profilerPort {
			return fmt.Errorf("port and profiler port must not be equal")
		}
		if !noRest && profilerPort == GetInt(RestPortKey) {
			return fmt.Errorf("rest port and profiler port must not be equal")
		}
	}

	return nil
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func GetTLSDir() string {
	return filepath.Join(GetDatadir(), TLSLocation)
}

func GetDefaultStrategy() domain.CoinSelectionStrategy {
	// Already validated in init().
	strategy, _ := domain.ParseCoinSelectionStrategy(GetString(DefaultStrategyKey))
	return strategy
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func Set(key string, val interface{}) {
	vip.Set(key, val)
}

func Unset(key string) {
	vip.Set(key, nil)
}

func IsSet(key string) bool {
	return vip.IsSet(key)
}

// Validate checks the current config values.
func Validate() error {
	return validate()
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	noProfiler := GetBool(NoProfilerKey)
	if !noProfiler {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}

	noTls := GetBool(NoTLSKey)
	if noTls {
		return nil
	}
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, TLSLocation)); err != nil {
		return err
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}
