package model

// AppConfig holds user-level application preferences persisted across
// runs: which engine profile to default to and which cartilla/catalog
// files were used recently, mirroring the teacher's appconfig shape.
type AppConfig struct {
	DefaultProfile  string   `json:"default_profile"`
	RecentCartillas []string `json:"recent_cartillas"`
	LastCatalogPath string   `json:"last_catalog_path"`
}

// DefaultAppConfig returns the zero-value-safe starting configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultProfile:  "BALANCED",
		RecentCartillas: []string{},
	}
}

// MaxRecentCartillas bounds the recent-cartillas MRU list.
const MaxRecentCartillas = 10

// WithRecentCartilla returns a copy of cfg with path pushed to the front
// of RecentCartillas, de-duplicated and capped at MaxRecentCartillas.
func (c AppConfig) WithRecentCartilla(path string) AppConfig {
	out := make([]string, 0, MaxRecentCartillas)
	out = append(out, path)
	for _, p := range c.RecentCartillas {
		if p == path {
			continue
		}
		out = append(out, p)
		if len(out) >= MaxRecentCartillas {
			break
		}
	}
	c.RecentCartillas = out
	return c
}
