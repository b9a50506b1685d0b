package models

// MonitorListResponse wraps GET monitors.json
type MonitorListResponse struct {
	Monitors []MonitorEntry `json:"monitors"`
}

// MonitorResponse wraps GET monitors/<id>.json
type MonitorResponse struct {
	Monitor MonitorEntry `json:"monitor"`
}

// MonitorEntry pairs the monitor configuration with its runtime status.
// Monitor_Status is only present from 1.32 on.
type MonitorEntry struct {
	Monitor Monitor         `json:"Monitor"`
	Status  map[string]Flex `json:"Monitor_Status,omitempty"`
}

// Monitor represents a single capture source
type Monitor struct {
	ID           Flex `json:"Id"`
	Name         Flex `json:"Name"`
	ServerID     Flex `json:"ServerId"`
	StorageID    Flex `json:"StorageId"`
	Type         Flex `json:"Type"`
	Function     Flex `json:"Function"`
	Enabled      Flex `json:"Enabled"`
	Protocol     Flex `json:"Protocol"`
	Method       Flex `json:"Method"`
	Host         Flex `json:"Host"`
	Port         Flex `json:"Port"`
	Path         Flex `json:"Path"`
	Device       Flex `json:"Device"`
	Width        Flex `json:"Width"`
	Height       Flex `json:"Height"`
	Colours      Flex `json:"Colours"`
	MaxFPS       Flex `json:"MaxFPS"`
	Controllable Flex `json:"Controllable"`
	ControlID    Flex `json:"ControlId"`
}

// DaemonStatusResponse wraps GET monitors/daemonStatus/id:<id>/daemon:<daemon>.json
type DaemonStatusResponse struct {
	Status     Flex   `json:"status"`
	StatusText string `json:"statustext"`
}

// ControlListResponse wraps GET controls.json
type ControlListResponse struct {
	Controls []ControlEntry `json:"controls"`
}

type ControlEntry struct {
	Control Control `json:"Control"`
}

// Control is a PTZ control profile a monitor can reference.
type Control struct {
	ID       Flex `json:"Id"`
	Name     Flex `json:"Name"`
	Type     Flex `json:"Type"`
	Protocol Flex `json:"Protocol"`
}
