package appconfig_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, repoType := range []string{"inmemory", "badger", "sqlite"} {
			cfg := &appconfig.AppConfig{
				DefaultStrategy:   domain.MinFirst,
				MinFirstLimit:     3,
				RepoManagerType:   repoType,
				RepoManagerConfig: "",
			}
			if repoType == "inmemory" {
				cfg.RepoManagerConfig = nil
			}
			require.NoError(t, cfg.Validate(), repoType)
			require.NotNil(t, cfg.RepoManager())
			require.Nil(t, cfg.EventPublisher())
			require.NotNil(t, cfg.WalletService())
			require.NotNil(t, cfg.CalculatorService())
			require.NotNil(t, cfg.HistoryService())
			require.NotNil(t, cfg.NotificationService())
			require.Equal(t, domain.MinFirst, cfg.CalculatorService().DefaultStrategy())

			info := cfg.WalletService().GetInfo(context.Background())
			require.Equal(t, "dev", info.Version)
			require.Equal(t, "none", info.Commit)
			require.Equal(t, "unknown", info.Date)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name        string
			cfg         *appconfig.AppConfig
			expectedErr string
		}{
			{
				name:        "unknown strategy",
				cfg:         &appconfig.AppConfig{DefaultStrategy: 5, RepoManagerType: "inmemory"},
				expectedErr: domain.ErrUnknownStrategy.Error(),
			},
			{
				name:        "missing repo manager type",
				cfg:         &appconfig.AppConfig{},
				expectedErr: "missing repo manager type",
			},
			{
				name:        "unsupported repo manager type",
				cfg:         &appconfig.AppConfig{RepoManagerType: "mongodb"},
				expectedErr: "repo manager type not supported",
			},
			{
				name:        "missing badger config",
				cfg:         &appconfig.AppConfig{RepoManagerType: "badger"},
				expectedErr: "missing repo manager config args",
			},
			{
				name: "invalid postgres config",
				cfg: &appconfig.AppConfig{
					RepoManagerType: "postgres", RepoManagerConfig: "dsn",
				},
				expectedErr: "invalid repo manager config type",
			},
			{
				name: "missing amqp url",
				cfg: &appconfig.AppConfig{
					RepoManagerType: "inmemory",
					AmqpConfig:      &appconfig.AmqpConfig{Exchange: "coinpurse"},
				},
				expectedErr: "missing amqp url",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.cfg.Validate()
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.expectedErr)
			})
		}
	})
}
