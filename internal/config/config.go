// Package config holds the server configuration and the data stream catalog.
package config

import (
	"os"
	"sort"
	"strconv"
)

// Config is the server configuration, read from the environment. Defaults
// suit local development; deployments override via .env or real env vars.
type Config struct {
	Port          string
	UploadDir     string
	MaxUploadSize int64
	AdminPassword string
}

const defaultMaxUploadSize = 16 << 20 // 16 MB

// Load reads the configuration from the environment.
func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: defaultMaxUploadSize,
		AdminPassword: getEnv("ADMIN_PASSWORD", "ncird2026"),
	}
	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadSize = n
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DataStream describes one surveillance data stream accepted for upload.
type DataStream struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	FullName           string   `json:"full_name"`
	Description        string   `json:"description"`
	Formats            []string `json:"formats"`
	Cadence            string   `json:"cadence"`
	Enabled            bool     `json:"enabled"`
	AlertIfMissingDays int      `json:"alert_if_missing_days"`
}

// dataStreams is the catalog of known streams. Enabled streams accept
// uploads; the rest appear in listings for dashboard completeness only.
var dataStreams = map[string]DataStream{
	"nnad": {
		ID:                 "nnad",
		Name:               "NNAD",
		FullName:           "National Notifiable Diseases Surveillance System",
		Description:        "Case notifications for nationally notifiable conditions",
		Formats:            []string{"csv", "xlsx", "json"},
		Cadence:            "weekly",
		Enabled:            true,
		AlertIfMissingDays: 10,
	},
	"mumps": {
		ID:                 "mumps",
		Name:               "Mumps Surveillance",
		FullName:           "Mumps Case Surveillance",
		Description:        "Mumps case reports with clinical and laboratory detail",
		Formats:            []string{"csv", "xlsx"},
		Cadence:            "weekly",
		Enabled:            true,
		AlertIfMissingDays: 10,
	},
	"nrevss": {
		ID:                 "nrevss",
		Name:               "NREVSS",
		FullName:           "National Respiratory and Enteric Virus Surveillance System",
		Description:        "Weekly aggregate respiratory virus laboratory results",
		Formats:            []string{"csv", "xlsx"},
		Cadence:            "weekly",
		Enabled:            true,
		AlertIfMissingDays: 9,
	},
	"nis": {
		ID:                 "nis",
		Name:               "NIS",
		FullName:           "National Immunization Survey",
		Description:        "Vaccination coverage survey extracts",
		Formats:            []string{"csv"},
		Cadence:            "quarterly",
		Enabled:            false,
		AlertIfMissingDays: 100,
	},
	"iis": {
		ID:                 "iis",
		Name:               "IIS",
		FullName:           "Immunization Information Systems",
		Description:        "Jurisdiction immunization registry extracts",
		Formats:            []string{"csv", "hl7"},
		Cadence:            "monthly",
		Enabled:            false,
		AlertIfMissingDays: 35,
	},
}

// GetStream looks up a stream by id.
func GetStream(id string) (DataStream, bool) {
	s, ok := dataStreams[id]
	return s, ok
}

// Streams returns the catalog sorted by id.
func Streams() []DataStream {
	out := make([]DataStream, 0, len(dataStreams))
	for _, s := range dataStreams {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
