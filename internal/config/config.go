// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Chain       ChainConfig
	Wallet      WalletConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type ChainConfig struct {
	ChainID         string
	RPCEndpoint     string
	ContractAddress string
	Denom           string
	GasPrice        string
	RefreshInterval int // seconds between automatic product refreshes
}

type WalletConfig struct {
	// ServiceURL points at the wallet daemon. Empty means no wallet is
	// available, which surfaces as a connection failure to the user.
	ServiceURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Chain: ChainConfig{
			ChainID:         getEnv("CHAIN_ID", "xion-testnet-1"),
			RPCEndpoint:     getEnv("CHAIN_RPC_ENDPOINT", ""),
			ContractAddress: getEnv("CHAIN_CONTRACT_ADDRESS", ""),
			Denom:           getEnv("CHAIN_DENOM", "uxion"),
			GasPrice:        getEnv("CHAIN_GAS_PRICE", "0.025uxion"),
			RefreshInterval: getEnvAsInt("PRODUCT_REFRESH_INTERVAL", 15),
		},
		Wallet: WalletConfig{
			ServiceURL: getEnv("WALLET_SERVICE_URL", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.Chain.RPCEndpoint == "" {
			return fmt.Errorf("CHAIN_RPC_ENDPOINT is required in production")
		}
		if c.Chain.ContractAddress == "" {
			return fmt.Errorf("CHAIN_CONTRACT_ADDRESS is required in production")
		}
	}
	if c.Chain.RefreshInterval <= 0 {
		return fmt.Errorf("PRODUCT_REFRESH_INTERVAL must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
