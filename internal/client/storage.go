package client

import (
	"context"

	"zoneminder-cli/pkg/models"
)

// Storage lists the storage areas. The endpoint exists from 1.32 on.
func (c *ZMClient) Storage(ctx context.Context) ([]models.Storage, error) {
	var respData models.StorageListResponse
	if err := c.GetJSON(ctx, "storage.json", &respData); err != nil {
		return nil, err
	}
	storage := make([]models.Storage, 0, len(respData.Storage))
	for _, s := range respData.Storage {
		storage = append(storage, s.Storage)
	}
	return storage, nil
}
