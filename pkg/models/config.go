package models

// ConfigListResponse wraps GET configs.json
type ConfigListResponse struct {
	Configs []ConfigEntry `json:"configs"`
}

type ConfigEntry struct {
	Config Config `json:"Config"`
}

// Config is one ZM_* option of the server.
type Config struct {
	ID       Flex `json:"Id"`
	Name     Flex `json:"Name"`
	Value    Flex `json:"Value"`
	Type     Flex `json:"Type"`
	Category Flex `json:"Category"`
}
