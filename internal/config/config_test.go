// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "xion-testnet-1", cfg.Chain.ChainID)
	assert.Equal(t, "uxion", cfg.Chain.Denom)
	assert.Equal(t, "0.025uxion", cfg.Chain.GasPrice)
	assert.Equal(t, 15, cfg.Chain.RefreshInterval)
	assert.Empty(t, cfg.Wallet.ServiceURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CHAIN_RPC_ENDPOINT", "https://api.example.com")
	t.Setenv("CHAIN_CONTRACT_ADDRESS", "xion1contract")
	t.Setenv("PRODUCT_REFRESH_INTERVAL", "30")
	t.Setenv("WALLET_SERVICE_URL", "http://localhost:9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Chain.RPCEndpoint)
	assert.Equal(t, "xion1contract", cfg.Chain.ContractAddress)
	assert.Equal(t, 30, cfg.Chain.RefreshInterval)
	assert.Equal(t, "http://localhost:9090", cfg.Wallet.ServiceURL)
}

func TestProductionRequiresChainSettings(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAIN_RPC_ENDPOINT")

	t.Setenv("CHAIN_RPC_ENDPOINT", "https://api.example.com")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAIN_CONTRACT_ADDRESS")

	t.Setenv("CHAIN_CONTRACT_ADDRESS", "xion1contract")
	_, err = Load()
	assert.NoError(t, err)
}

func TestRefreshIntervalMustBePositive(t *testing.T) {
	t.Setenv("PRODUCT_REFRESH_INTERVAL", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRODUCT_REFRESH_INTERVAL")
}

func TestMalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("PRODUCT_REFRESH_INTERVAL", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Chain.RefreshInterval)
}
