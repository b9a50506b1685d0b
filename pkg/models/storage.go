package models

// StorageListResponse wraps GET storage.json (1.32+)
type StorageListResponse struct {
	Storage []StorageEntry `json:"storage"`
}

type StorageEntry struct {
	Storage Storage `json:"Storage"`
}

// Storage is a storage area as the API describes it.
type Storage struct {
	ID        Flex `json:"Id"`
	Name      Flex `json:"Name"`
	Path      Flex `json:"Path"`
	Type      Flex `json:"Type"`
	Scheme    Flex `json:"Scheme"`
	ServerID  Flex `json:"ServerId"`
	DiskSpace Flex `json:"DiskSpace"`
	Enabled   Flex `json:"Enabled"`
}

// Fields returns the non-empty API fields keyed by their API names.
func (s Storage) Fields() map[string]any {
	out := map[string]any{}
	for k, v := range map[string]Flex{
		"Id":        s.ID,
		"Name":      s.Name,
		"Path":      s.Path,
		"Type":      s.Type,
		"Scheme":    s.Scheme,
		"ServerId":  s.ServerID,
		"DiskSpace": s.DiskSpace,
		"Enabled":   s.Enabled,
	} {
		if v != "" {
			out[k] = v.String()
		}
	}
	return out
}

// Volume is a storage area reconciled from the console page and the API.
// Sizes are in bytes.
type Volume struct {
	Name    string  `json:"name"`
	Used    float64 `json:"used"`
	Total   float64 `json:"total"`
	Events  float64 `json:"events"`
	Percent int     `json:"percent"`
}
