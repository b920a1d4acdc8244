package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr       string
	GinMode       string
	DBDSN         string
	CatalogPath   string
	HoldTTL       time.Duration
	SweepInterval time.Duration
	OperatorToken string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	catalogPath := strings.TrimSpace(os.Getenv("CATALOG_PATH"))
	if catalogPath == "" {
		catalogPath = "catalog.yaml"
	}

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		CatalogPath:   catalogPath,
		HoldTTL:       secondsEnv("HOLD_TTL_SECONDS", 600),
		SweepInterval: secondsEnv("SWEEP_INTERVAL_SECONDS", 5),
		OperatorToken: strings.TrimSpace(os.Getenv("OPERATOR_JWT_SECRET")),
	}
}

func secondsEnv(key string, fallback int) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}
