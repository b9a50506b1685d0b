package client

import (
	"context"

	"zoneminder-cli/pkg/models"
)

// ConsoleEventsInterval is the look-back window of ConsoleEvents, already
// escaped for the URL path.
const ConsoleEventsInterval = "300%20second"

// ConsoleEvents returns per-monitor event counts over the last five
// minutes. Users without View access to events get an error here.
func (c *ZMClient) ConsoleEvents(ctx context.Context) (models.EventCounts, error) {
	var respData models.ConsoleEventsResponse
	if err := c.GetJSON(ctx, "events/consoleEvents/"+ConsoleEventsInterval+".json", &respData); err != nil {
		return nil, err
	}
	if respData.Results == nil {
		respData.Results = models.EventCounts{}
	}
	return respData.Results, nil
}
