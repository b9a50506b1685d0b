package client

import (
	"context"

	"zoneminder-cli/pkg/models"
)

// DaemonCheck reports whether zmdc is running (result 1).
func (c *ZMClient) DaemonCheck(ctx context.Context) (models.DaemonCheckResponse, error) {
	var respData models.DaemonCheckResponse
	err := c.GetJSON(ctx, "host/daemonCheck.json", &respData)
	return respData, err
}

// Load returns the 1, 5 and 15 minute load averages of the server.
func (c *ZMClient) Load(ctx context.Context) ([]models.Flex, error) {
	var respData models.LoadResponse
	if err := c.GetJSON(ctx, "host/getLoad.json", &respData); err != nil {
		return nil, err
	}
	return respData.Load, nil
}

// Version returns the daemon and API version strings.
func (c *ZMClient) Version(ctx context.Context) (models.VersionResponse, error) {
	var respData models.VersionResponse
	err := c.GetJSON(ctx, "host/getVersion.json", &respData)
	return respData, err
}

// States lists the run states.
func (c *ZMClient) States(ctx context.Context) ([]models.State, error) {
	var respData models.StateListResponse
	if err := c.GetJSON(ctx, "states.json", &respData); err != nil {
		return nil, err
	}
	states := make([]models.State, 0, len(respData.States))
	for _, s := range respData.States {
		states = append(states, s.State)
	}
	return states, nil
}

// Configs lists the server options.
func (c *ZMClient) Configs(ctx context.Context) ([]models.Config, error) {
	var respData models.ConfigListResponse
	if err := c.GetJSON(ctx, "configs.json", &respData); err != nil {
		return nil, err
	}
	configs := make([]models.Config, 0, len(respData.Configs))
	for _, cfg := range respData.Configs {
		configs = append(configs, cfg.Config)
	}
	return configs, nil
}

// Console fetches the HTML console page.
func (c *ZMClient) Console(ctx context.Context) (string, error) {
	return c.GetHTML(ctx, "index.php?view=console")
}
