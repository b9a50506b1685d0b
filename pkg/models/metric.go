package models

// CounterType tells the consumer how to interpret a value over time.
type CounterType string

const (
	Gauge   CounterType = "GAUGE"
	Counter CounterType = "COUNTER"
	Derive  CounterType = "DERIVE"
)

// ValueType is the declared type of a datapoint. The zero value lets the
// normalizer decide from the datapoint ID.
type ValueType string

const (
	AutoValue  ValueType = ""
	IntValue   ValueType = "int"
	FloatValue ValueType = "float"
)

// DataPoint declares one metric a datasource emits.
type DataPoint struct {
	ID      string      `json:"id" mapstructure:"id"`
	Type    ValueType   `json:"type,omitempty" mapstructure:"type"`
	RRDType CounterType `json:"rrdType,omitempty" mapstructure:"rrd_type"`
}

// Value is a single normalized metric value.
type Value struct {
	Value float64     `json:"value"`
	Type  CounterType `json:"type"`
}

// Batch maps component ID to metric name to value.
type Batch map[string]map[string]Value

func (b Batch) Add(component, metric string, v Value) {
	if b[component] == nil {
		b[component] = map[string]Value{}
	}
	b[component][metric] = v
}

// Merge copies every value of o into b, overwriting duplicates.
func (b Batch) Merge(o Batch) {
	for comp, values := range o {
		for name, v := range values {
			b.Add(comp, name, v)
		}
	}
}
