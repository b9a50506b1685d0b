package models

import (
	"bytes"
	"encoding/json"
)

// ConsoleEventsResponse wraps GET events/consoleEvents/<interval>.json
type ConsoleEventsResponse struct {
	Results EventCounts `json:"results"`
}

// EventCounts maps monitor ID to the number of events in the interval.
// The API returns an empty list rather than an empty object when no monitor
// has events.
type EventCounts map[string]Flex

func (e *EventCounts) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*e = EventCounts{}
		return nil
	}
	m := map[string]Flex{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*e = m
	return nil
}

// Total sums the counts of every monitor. Unparsable counts are skipped.
func (e EventCounts) Total() int64 {
	var total int64
	for _, v := range e {
		if n, err := v.Int(); err == nil {
			total += n
		}
	}
	return total
}

// For returns the count of one monitor, 0 when it has none.
func (e EventCounts) For(monitorID string) int64 {
	n, err := e[monitorID].Int()
	if err != nil {
		return 0
	}
	return n
}
