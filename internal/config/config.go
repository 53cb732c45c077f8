package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	ReportPath  string // BO report workbook (xlsx)
	FeedURL     string // JSON funnel feed, alternative to the workbook
	MongoURI    string // empty disables the document store
	MongoDB     string
	MongoColl   string
	ExportDir   string
	Port        string
	HTTPTimeout time.Duration
	LogLevel    slog.Level
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		ReportPath:  os.Getenv("BO_REPORT_PATH"),
		FeedURL:     os.Getenv("FUNNEL_FEED_URL"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     envOr("MONGO_DB", "deep-diver"),
		MongoColl:   envOr("MONGO_COLLECTION", "boreport"),
		ExportDir:   envOr("EXPORT_DIR", "."),
		Port:        envOr("PORT", "8080"),
		HTTPTimeout: to,
		LogLevel:    lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
