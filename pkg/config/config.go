package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	RPCURL           string
	ContractAddress  string
	IPFSAPIURL       string
	IPFSFetchTimeout time.Duration
	UnlockTimeout    time.Duration
	ResolveWorkers   int
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		RPCURL:           getEnv("RPC_URL", "http://127.0.0.1:8545"),
		ContractAddress:  getEnv("CONTRACT_ADDRESS", "0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		IPFSAPIURL:       getEnv("IPFS_API_URL", "http://127.0.0.1:5001"),
		IPFSFetchTimeout: getDurationEnv("IPFS_FETCH_TIMEOUT", 10*time.Second),
		UnlockTimeout:    getDurationEnv("UNLOCK_TIMEOUT", 10*time.Second),
		ResolveWorkers:   getIntEnv("RESOLVE_WORKERS", 8),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
