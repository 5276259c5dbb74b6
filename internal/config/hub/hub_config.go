package hub

import (
	"time"

	"github.com/crystaldolphin/skillhub/internal/skillhub"
)

// HubConfig points the skill hub at its registry and catalog endpoints.
type HubConfig struct {
	RegistryBaseURL string `json:"registryBaseUrl"`
	CatalogBaseURL  string `json:"catalogBaseUrl"`
	TimeoutSeconds  int    `json:"timeoutSeconds"`
	SearchLimit     int    `json:"searchLimit"`
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		RegistryBaseURL: skillhub.DefaultRegistryBaseURL,
		CatalogBaseURL:  skillhub.DefaultCatalogBaseURL,
		TimeoutSeconds:  int(skillhub.DefaultRequestTimeout / time.Second),
		SearchLimit:     10,
	}
}

// Timeout returns the request timeout, falling back to the client default
// when unset.
func (c HubConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return skillhub.DefaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ClientOptions translates the config into skillhub client options.
func (c HubConfig) ClientOptions() []skillhub.ClientOption {
	return []skillhub.ClientOption{
		skillhub.WithRegistryBaseURL(c.RegistryBaseURL),
		skillhub.WithCatalogBaseURL(c.CatalogBaseURL),
		skillhub.WithTimeout(c.Timeout()),
	}
}
