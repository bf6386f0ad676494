package appconfig

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/config"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
	minfirst "github.com/vulpemventures/coinpurse/internal/infrastructure/coin-selector/min-first"
	amqppublisher "github.com/vulpemventures/coinpurse/internal/infrastructure/publisher/amqp"
	dbbadger "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/badger"
	"github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/inmemory"
	postgresdb "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/postgres"
	sqlitedb "github.com/vulpemventures/coinpurse/internal/infrastructure/storage/db/sqlite"
)

// AmqpConfig holds the args to connect to the AMQP broker where spend
// records are published.
type AmqpConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// AppConfig is the struct holding all configuration options for
// every application service (wallet, calculator, history and notification).
// This data structure acts also as a factory of the mentioned application
// services and the portable services used by them.
// Public config args:
//   - DefaultStrategy - (required) The coin selection strategy used when a request doesn't specify one.
//   - MinFirstLimit - (optional) The number of combos collected by the min-first strategy.
//   - MinFirstMaxVisits - (optional) The max number of branches explored by the min-first strategy.
//   - RepoManagerType - (required) One of the supported repository manager types.
//   - RepoManagerConfig - (optional) Custom config args for the repository manager based on its type.
//   - AmqpConfig - (optional) Broker args, spend records are not published if nil.
type AppConfig struct {
	Version string
	Commit  string
	Date    string

	DefaultStrategy   domain.CoinSelectionStrategy
	MinFirstLimit     int
	MinFirstMaxVisits int

	RepoManagerType   string
	RepoManagerConfig interface{}
	AmqpConfig        *AmqpConfig

	rm         ports.RepoManager
	publisher  ports.EventPublisher
	walletSvc  *application.WalletService
	calcSvc    *application.CalculatorService
	historySvc *application.HistoryService
	notifySvc  *application.NotificationService
}

func (c *AppConfig) Validate() error {
	if c.DefaultStrategy.String() == "" {
		return fmt.Errorf("%w: %d", domain.ErrUnknownStrategy, c.DefaultStrategy)
	}
	if c.MinFirstLimit < 0 {
		return fmt.Errorf("min-first limit must not be negative")
	}
	if len(c.RepoManagerType) == 0 {
		return fmt.Errorf("missing repo manager type")
	}
	if _, ok := config.SupportedDbs[c.RepoManagerType]; !ok {
		return fmt.Errorf(
			"repo manager type not supported, must be one of: %s",
			config.SupportedDbs,
		)
	}
	if c.AmqpConfig != nil && c.AmqpConfig.URL == "" {
		return fmt.Errorf("missing amqp url")
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.eventPublisher(); err != nil {
		return err
	}

	return nil
}

func (c *AppConfig) RepoManager() ports.RepoManager {
	return c.rm
}

func (c *AppConfig) EventPublisher() ports.EventPublisher {
	return c.publisher
}

func (c *AppConfig) WalletService() *application.WalletService {
	return c.walletService()
}

func (c *AppConfig) CalculatorService() *application.CalculatorService {
	return c.calculatorService()
}

func (c *AppConfig) HistoryService() *application.HistoryService {
	return c.historyService()
}

func (c *AppConfig) NotificationService() *application.NotificationService {
	return c.notificationService()
}

// Close releases the connections held by the repo manager and the event
// publisher, if any.
func (c *AppConfig) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			log.WithError(err).Warn("app config: failed to close event publisher")
		}
	}
	if c.rm != nil {
		c.rm.Close()
	}
}

func (c *AppConfig) repoManager() (ports.RepoManager, error) {
	if c.rm != nil {
		return c.rm, nil
	}

	switch c.RepoManagerType {
	case "inmemory":
		c.rm = inmemory.NewRepoManager()
		return c.rm, nil
	case "badger":
		if c.RepoManagerConfig == nil {
			return nil, fmt.Errorf("missing repo manager config args")
		}
		datadir, ok := c.RepoManagerConfig.(string)
		if !ok {
			return nil, fmt.Errorf("invalid repo manager config type, must be string")
		}
		rm, err := dbbadger.NewRepoManager(datadir, log.New())
		if err != nil {
			return nil, err
		}
		c.rm = rm
		return c.rm, nil
	case "postgres":
		dbConfig, ok := c.RepoManagerConfig.(postgresdb.DbConfig)
		if !ok {
			return nil, fmt.Errorf("invalid repo manager config type, must be postgresdb.DbConfig")
		}

		rm, err := postgresdb.NewRepoManager(dbConfig)
		if err != nil {
			return nil, err
		}

		c.rm = rm
		return c.rm, nil
	case "sqlite":
		dbPath := ""
		if c.RepoManagerConfig != nil {
			path, ok := c.RepoManagerConfig.(string)
			if !ok {
				return nil, fmt.Errorf("invalid repo manager config type, must be string")
			}
			dbPath = path
		}

		rm, err := sqlitedb.NewRepoManager(dbPath)
		if err != nil {
			return nil, err
		}

		c.rm = rm
		return c.rm, nil
	default:
		return nil, fmt.Errorf("unknown repo manager type")
	}
}

func (c *AppConfig) eventPublisher() (ports.EventPublisher, error) {
	if c.publisher != nil || c.AmqpConfig == nil {
		return c.publisher, nil
	}

	publisher, err := amqppublisher.NewEventPublisher(
		c.AmqpConfig.URL, c.AmqpConfig.Exchange, c.AmqpConfig.RoutingKey,
	)
	if err != nil {
		return nil, err
	}
	c.publisher = publisher
	return c.publisher, nil
}

func (c *AppConfig) walletService() *application.WalletService {
	if c.walletSvc != nil {
		return c.walletSvc
	}

	rm, _ := c.repoManager()
	c.walletSvc = application.NewWalletService(rm, c.buildInfo())
	return c.walletSvc
}

func (c *AppConfig) calculatorService() *application.CalculatorService {
	if c.calcSvc != nil {
		return c.calcSvc
	}

	rm, _ := c.repoManager()
	opts := make([]minfirst.Option, 0, 2)
	if c.MinFirstLimit > 0 {
		opts = append(opts, minfirst.WithLimit(c.MinFirstLimit))
	}
	if c.MinFirstMaxVisits != 0 {
		opts = append(opts, minfirst.WithMaxVisits(c.MinFirstMaxVisits))
	}
	c.calcSvc = application.NewCalculatorService(rm, c.DefaultStrategy, opts...)
	return c.calcSvc
}

func (c *AppConfig) historyService() *application.HistoryService {
	if c.historySvc != nil {
		return c.historySvc
	}

	rm, _ := c.repoManager()
	c.historySvc = application.NewHistoryService(rm)
	return c.historySvc
}

func (c *AppConfig) notificationService() *application.NotificationService {
	if c.notifySvc != nil {
		return c.notifySvc
	}

	rm, _ := c.repoManager()
	publisher, _ := c.eventPublisher()
	c.notifySvc = application.NewNotificationService(rm, publisher)
	return c.notifySvc
}

func (c *AppConfig) buildInfo() application.BuildInfo {
	version := "dev"
	if c.Version != "" {
		version = c.Version
	}
	commit := "none"
	if c.Commit != "" {
		commit = c.Commit
	}
	date := "unknown"
	if c.Date != "" {
		date = c.Date
	}
	return application.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
