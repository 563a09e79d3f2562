package Config

import (
	"log"
	"os"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// AppConfig is the service configuration, read from config.json5 with
// environment overrides for secrets and the listen port
type AppConfig struct {
	Port                 string             `json:"port"`
	DatabasePath         string             `json:"databasePath"`
	KakaoAPIKey          string             `json:"kakaoApiKey"`
	KakaoBaseURL         string             `json:"kakaoBaseUrl"`
	OdsayAPIKey          string             `json:"odsayApiKey"`
	OdsayBaseURL         string             `json:"odsayBaseUrl"`
	AverageSpeedsKmh     map[string]float64 `json:"averageSpeedsKmh"`
	HistoryRetentionDays int                `json:"historyRetentionDays"`
}

// Current holds the loaded configuration for the whole process
var Current *AppConfig

// Load reads config.json5 (missing file is fine, defaults apply) and then
// applies environment overrides. Call once from main before Connect.
func Load(path string) *AppConfig {
	cfg := &AppConfig{
		Port:                 "3001",
		DatabasePath:         "database.db",
		HistoryRetentionDays: 90,
	}

	if path == "" {
		path = "config.json5"
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json5.Unmarshal(data, cfg); err != nil {
			log.Printf("Error parsing %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Error reading %s: %v", path, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("KAKAO_REST_API_KEY"); v != "" {
		cfg.KakaoAPIKey = v
	}
	if v := os.Getenv("ODSAY_API_KEY"); v != "" {
		cfg.OdsayAPIKey = v
	}

	Current = cfg
	return cfg
}
