package models

// DaemonCheckResponse wraps GET host/daemonCheck.json
type DaemonCheckResponse struct {
	Result Flex `json:"result"`
}

// LoadResponse wraps GET host/getLoad.json. The array holds the 1, 5 and 15
// minute load averages.
type LoadResponse struct {
	Load []Flex `json:"load"`
}

// VersionResponse wraps GET host/getVersion.json
type VersionResponse struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiversion"`
}

// LoginResponse covers the fields of host/login.json we look at. Older
// releases answer with an HTML page instead.
type LoginResponse struct {
	Credentials string `json:"credentials"`
	Version     string `json:"version"`
	APIVersion  string `json:"apiversion"`
}

// StateListResponse wraps GET states.json
type StateListResponse struct {
	States []StateEntry `json:"states"`
}

type StateEntry struct {
	State State `json:"State"`
}

// State is a named run state of the daemon. Exactly one is active.
type State struct {
	ID         Flex `json:"Id"`
	Name       Flex `json:"Name"`
	Definition Flex `json:"Definition"`
	IsActive   Flex `json:"IsActive"`
}
