package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	AppPort        string
	TasksFile      string
	TranslationDir string
	LogFile        string
	Location       *time.Location
	TrustedProxies []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		TasksFile:      getEnv("TASKS_FILE", ""),
		TranslationDir: getEnv("TRANSLATION_DIR", "pkg/translator/translation"),
		LogFile:        getEnv("LOG_FILE", ""),
		Location:       loadLocation(os.Getenv("TZ_NAME")),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// loadLocation resolves the wall-clock zone every reminder date is entered
// and displayed in. Unset or unknown names fall back to the process zone.
func loadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		zap.L().Warn("unknown timezone, using process local", zap.String("tz", name), zap.Error(err))
		return time.Local
	}
	return loc
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
