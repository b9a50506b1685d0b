package client

import (
	"context"
	"fmt"
	"net/url"

	"zoneminder-cli/pkg/models"
)

// Monitors lists every configured monitor.
func (c *ZMClient) Monitors(ctx context.Context) ([]models.MonitorEntry, error) {
	var respData models.MonitorListResponse
	if err := c.GetJSON(ctx, "monitors.json", &respData); err != nil {
		return nil, err
	}
	return respData.Monitors, nil
}

// Monitor fetches one monitor; from 1.32 on the entry carries Monitor_Status.
func (c *ZMClient) Monitor(ctx context.Context, id string) (models.MonitorEntry, error) {
	var respData models.MonitorResponse
	err := c.GetJSON(ctx, fmt.Sprintf("monitors/%s.json", url.PathEscape(id)), &respData)
	return respData.Monitor, err
}

// MonitorDaemonStatus asks whether a per-monitor daemon (zmc, zma) runs.
func (c *ZMClient) MonitorDaemonStatus(ctx context.Context, id, daemon string) (models.DaemonStatusResponse, error) {
	var respData models.DaemonStatusResponse
	path := fmt.Sprintf("monitors/daemonStatus/id:%s/daemon:%s.json", url.PathEscape(id), url.PathEscape(daemon))
	err := c.GetJSON(ctx, path, &respData)
	return respData, err
}

// Controls lists the PTZ control profiles.
func (c *ZMClient) Controls(ctx context.Context) ([]models.Control, error) {
	var respData models.ControlListResponse
	if err := c.GetJSON(ctx, "controls.json", &respData); err != nil {
		return nil, err
	}
	controls := make([]models.Control, 0, len(respData.Controls))
	for _, ctl := range respData.Controls {
		controls = append(controls, ctl.Control)
	}
	return controls, nil
}
