package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port         string
	SnapshotPath string
	Env          string
}

var AppConfig ServerConfig

func Load() error {
	if err := godotenv.Load("marketserver/.env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading env: %w", err)
	}
	port := os.Getenv("MARKET_PORT")
	if port == "" {
		port = "8082"
	}
	snapshot := os.Getenv("MINTGATE_SNAPSHOT")
	if snapshot == "" {
		snapshot = "./mintgate.db"
	}
	AppConfig = ServerConfig{
		Port:         port,
		SnapshotPath: snapshot,
		Env:          os.Getenv("MINTGATE_ENV"),
	}
	return nil
}
