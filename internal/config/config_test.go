package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/coinpurse/internal/config"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

func TestDefaults(t *testing.T) {
	require.NoError(t, config.Validate())
	require.NotEmpty(t, config.GetDatadir())
	require.Equal(t, "badger", config.GetString(config.DatabaseTypeKey))
	require.Equal(t, 18000, config.GetInt(config.PortKey))
	require.Equal(t, 3, config.GetInt(config.MinFirstLimitKey))
	require.Equal(t, 1000000, config.GetInt(config.MinFirstMaxVisitsKey))
	require.Equal(t, "coinpurse", config.GetString(config.AmqpExchangeKey))
	require.Equal(t, "spend_records", config.GetString(config.AmqpRoutingKeyKey))
	require.Empty(t, config.GetString(config.AmqpUrlKey))
	require.Equal(t, domain.MaxFirst, config.GetDefaultStrategy())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		values      map[string]interface{}
		expectedErr string
	}{
		{
			name:        "unsupported db",
			values:      map[string]interface{}{config.DatabaseTypeKey: "mongodb"},
			expectedErr: "unsupported database type",
		},
		{
			name:        "unknown strategy",
			values:      map[string]interface{}{config.DefaultStrategyKey: "random"},
			expectedErr: "unknown coin selection strategy",
		},
		{
			name:        "invalid min-first limit",
			values:      map[string]interface{}{config.MinFirstLimitKey: 0},
			expectedErr: "min-first limit must be a positive number",
		},
		{
			name:        "tls cert without key",
			values:      map[string]interface{}{config.TLSCertKey: "cert.pem"},
			expectedErr: "tls cert and key must be either both set or unset",
		},
		{
			name: "rest port clash",
			values: map[string]interface{}{
				config.RestPortKey: config.GetInt(config.PortKey),
			},
			expectedErr: "port and rest port must not be equal",
		},
		{
			name: "profiler port clash",
			values: map[string]interface{}{
				config.ProfilerPortKey: config.GetInt(config.PortKey),
			},
			expectedErr: "port and profiler port must not be equal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, val := range tt.values {
				config.Set(key, val)
			}
			t.Cleanup(func() {
				for key := range tt.values {
					config.Unset(key)
				}
			})

			err := config.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}

	t.Run("min-first strategy", func(t *testing.T) {
		config.Set(config.DefaultStrategyKey, "min-first")
		t.Cleanup(func() { config.Unset(config.DefaultStrategyKey) })

		require.NoError(t, config.Validate())
		require.Equal(t, domain.MinFirst, config.GetDefaultStrategy())
	})
}
