package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "empty".
type JsonConfig struct {
	DatabaseDSN         *string         `json:"database_dsn"`
	AuthURL             *string         `json:"auth_url"`
	AnonKey             *string         `json:"anon_key"`
	RedirectURL         *string         `json:"redirect_url"`
	StorageEndpoint     *string         `json:"storage_endpoint"`
	StorageRegion       *string         `json:"storage_region"`
	StorageAccessKey    *string         `json:"storage_access_key"`
	StorageSecretKey    *string         `json:"storage_secret_key"`
	StorageBucket       *string         `json:"storage_bucket"`
	StoragePublicURL    *string         `json:"storage_public_url"`
	CachePath           *string         `json:"cache_path"`
	ExportDir           *string         `json:"export_dir"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogFile             *string         `json:"log_file"`
	LogBackend          *string         `json:"log_backend"`
	LogLevel            *string         `json:"log_level"`
	MigrateRemote       *bool           `json:"migrate_remote"`
	SealPINs            *bool           `json:"seal_pins"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.AuthURL, jc.AuthURL)
	set(&cfg.AnonKey, jc.AnonKey)
	set(&cfg.RedirectURL, jc.RedirectURL)
	set(&cfg.StorageEndpoint, jc.StorageEndpoint)
	set(&cfg.StorageRegion, jc.StorageRegion)
	set(&cfg.StorageAccessKey, jc.StorageAccessKey)
	set(&cfg.StorageSecretKey, jc.StorageSecretKey)
	set(&cfg.StorageBucket, jc.StorageBucket)
	set(&cfg.StoragePublicURL, jc.StoragePublicURL)
	set(&cfg.CachePath, jc.CachePath)
	set(&cfg.ExportDir, jc.ExportDir)
	set(&cfg.LogFile, jc.LogFile)
	set(&cfg.LogBackend, jc.LogBackend)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.MigrateRemote, jc.MigrateRemote)
	set(&cfg.SealPINs, jc.SealPINs)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
