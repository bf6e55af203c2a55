package dto

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Success      bool   `json:"success"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Service      string `json:"service"`
	Port         string `json:"port"`
	APIKeyLoaded bool   `json:"api_key_loaded"`
	CacheEntries int    `json:"cache_entries"`
}

// CORSTestResponse is returned by GET /api/cors-test.
type CORSTestResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Origin         string `json:"origin"`
	Timestamp      string `json:"timestamp"`
	ReferrerPolicy string `json:"referrer_policy"`
	APIKeyLoaded   bool   `json:"api_key_loaded"`
}

// KeyInfo describes the configured provider key without revealing it.
type KeyInfo struct {
	Loaded bool   `json:"loaded"`
	Length int    `json:"length"`
	Prefix string `json:"prefix"`
}

// DebugEnvResponse is returned by GET /api/debug-env.
type DebugEnvResponse struct {
	Success          bool    `json:"success"`
	GoogleMapsAPIKey KeyInfo `json:"google_maps_api_key"`
	Port             string  `json:"port"`
	AppEnv           string  `json:"app_env"`
	Timestamp        string  `json:"timestamp"`
}
