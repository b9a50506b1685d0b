package collect

import (
	"context"
	"fmt"
	"sort"

	"zoneminder-cli/internal/scrape"
	"zoneminder-cli/internal/version"
	"zoneminder-cli/pkg/models"
)

// VolumeRecord is one storage area reconciled from the console page and,
// where available, storage.json.
type VolumeRecord struct {
	Name    string
	Scraped *models.Volume
	API     *models.Storage
	// Component is the component ID, unique within the cycle. Set by
	// Cycle.Volumes.
	Component string
}

// ComponentID returns Component, or the ID derived from the name for
// records built elsewhere.
func (r VolumeRecord) ComponentID() string {
	if r.Component != "" {
		return r.Component
	}
	return StorageComponent(r.Name)
}

// ID returns the API ID, empty for volumes only the console knows.
func (r VolumeRecord) ID() string {
	if r.API == nil {
		return ""
	}
	return r.API.ID.String()
}

// Stats merges the scraped figures with the API fields, API last.
func (r VolumeRecord) Stats() StatBag {
	bag := StatBag{}
	if v := r.Scraped; v != nil {
		if v.Total > 0 {
			bag["used"] = v.Used
			bag["total"] = v.Total
			bag["events"] = v.Events
		}
		bag["percent"] = v.Percent
	}
	if s := r.API; s != nil {
		bag.Merge(s.Fields())
		if n, err := s.DiskSpace.Int(); err == nil {
			bag["events"] = n
		}
	}
	return bag
}

// volumeSource reconciles volumes for one range of releases.
type volumeSource func(ctx context.Context, c *Cycle, records map[string]*VolumeRecord) error

var volumeSources = []version.Gate[volumeSource]{
	{Since: version.R0_0, Value: consoleVolumesOnly},
	{Since: version.R1_32, Value: mergeStorageAPI},
}

func consoleVolumesOnly(context.Context, *Cycle, map[string]*VolumeRecord) error {
	return nil
}

func mergeStorageAPI(ctx context.Context, c *Cycle, records map[string]*VolumeRecord) error {
	storage, err := c.Client.Storage(ctx)
	if err != nil {
		return err
	}
	for i := range storage {
		s := storage[i]
		name := s.Name.String()
		rec, ok := records[name]
		if !ok {
			// scraping missed it
			rec = &VolumeRecord{Name: name}
			records[name] = rec
		}
		rec.API = &s
	}
	return nil
}

// Volumes returns the reconciled, non-ignored storage volumes sorted by
// name.
func (c *Cycle) Volumes(ctx context.Context) ([]VolumeRecord, error) {
	html, err := c.Console(ctx)
	if err != nil {
		return nil, err
	}

	records := map[string]*VolumeRecord{}
	for name, v := range scrape.Volumes(html) {
		v := v
		records[name] = &VolumeRecord{Name: name, Scraped: &v}
	}

	release, err := c.Release(ctx)
	if err != nil {
		return nil, err
	}
	if source, ok := version.Pick(volumeSources, release); ok {
		if err := source(ctx, c, records); err != nil {
			return nil, err
		}
	}

	out := make([]VolumeRecord, 0, len(records))
	for _, rec := range records {
		if c.storageFilter.Skip(rec.ID(), rec.Name, "") {
			c.Log.Debug("ignoring storage volume", "volume", rec.Name)
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	// Names differing only in characters PrepID replaces share an ID;
	// later ones get a numeric suffix.
	used := map[string]bool{}
	for i := range out {
		id := StorageComponent(out[i].Name)
		if used[id] {
			base := id
			for n := 2; used[id]; n++ {
				id = fmt.Sprintf("%s_%d", base, n)
			}
			c.Log.Warn("storage volume component ID collides", "volume", out[i].Name, "component", id)
		}
		used[id] = true
		out[i].Component = id
	}
	return out, nil
}

// Storage collects the storage datasource of every volume.
func Storage(ctx context.Context, c *Cycle) error {
	volumes, err := c.Volumes(ctx)
	if err != nil {
		return err
	}

	batch := models.Batch{}
	for _, rec := range volumes {
		if rec.Scraped == nil {
			c.Log.Warn("storage volume not found in ZM web console", "volume", rec.Name)
		}
		bag := rec.Stats()
		c.Log.Debug("ZM storage output", "volume", rec.Name, "stats", bag)
		c.emit(batch, rec.ComponentID(), DatasourceStorage, KindStorage, bag)
	}

	c.Batch.Merge(batch)
	return nil
}
