package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"zoneminder-cli/internal/collect"
	"zoneminder-cli/pkg/models"
)

// resultView is the JSON shape of one cycle result.
type resultView struct {
	Target   string          `json:"target"`
	URL      string          `json:"url,omitempty"`
	Duration float64         `json:"durationSeconds"`
	Error    string          `json:"error,omitempty"`
	Metrics  models.Batch    `json:"metrics,omitempty"`
	Topology []models.RelMap `json:"topology,omitempty"`
}

func printJSON(w io.Writer, results []collect.Result) {
	views := make([]resultView, 0, len(results))
	for _, res := range results {
		v := resultView{
			Target:   res.Target,
			URL:      res.BaseURL,
			Duration: res.Duration.Seconds(),
			Metrics:  res.Batch,
			Topology: res.Topology,
		}
		if res.Err != nil {
			v.Error = res.Err.Error()
		}
		views = append(views, v)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(views); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// metricColumns returns the datapoint IDs found under datasource, in the
// order of the default template and alphabetically after that.
func metricColumns(results []collect.Result, kind, datasource string) []string {
	seen := map[string]bool{}
	for _, res := range results {
		for _, values := range res.Batch {
			for name := range values {
				if id, ok := strings.CutPrefix(name, datasource+"_"); ok {
					seen[id] = true
				}
			}
		}
	}

	var cols []string
	for _, dp := range collect.DefaultDatapoints[kind] {
		if seen[dp.ID] {
			cols = append(cols, dp.ID)
			delete(seen, dp.ID)
		}
	}
	var extra []string
	for id := range seen {
		extra = append(extra, id)
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// printMetrics writes one row per component with one column per datapoint.
// format renders a value; missing values print as "-".
func printMetrics(w io.Writer, results []collect.Result, kind, datasource, header string, format func(id string, v float64) string) {
	cols := metricColumns(results, kind, datasource)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	heads := append([]string{"TARGET", header}, upper(cols)...)
	fmt.Fprintln(tw, strings.Join(heads, "\t"))
	fmt.Fprintln(tw, strings.Join(dashes(heads), "\t"))

	for _, res := range results {
		components := make([]string, 0, len(res.Batch))
		for comp := range res.Batch {
			components = append(components, comp)
		}
		sort.Strings(components)

		for _, comp := range components {
			row := []string{res.Target, comp}
			for _, id := range cols {
				v, ok := res.Batch[comp][datasource+"_"+id]
				if !ok {
					row = append(row, "-")
					continue
				}
				row = append(row, format(id, v.Value))
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	tw.Flush()
}

func formatNumber(_ string, v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func dashes(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.Repeat("-", len(s))
	}
	return out
}
