/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package promstats contains adapters to publish stats variables to prometheus (http://prometheus.io)
*/
package promstats

import (
	"expvar"
	"strings"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"

	"vitess.io/binlogcodec/go/stats"
	"vitess.io/binlogcodec/go/vt/log"
)

// NewCollector returns a prometheus.Collector for a given stats var.
// It supports stats.Counter and stats.CountersWithSingleLabel; other
// variables return nil.
// The returned collector still needs to be registered with prometheus registry.
func NewCollector(opts prometheus.Opts, v expvar.Var) prometheus.Collector {
	switch st := v.(type) {
	case *stats.Counter:
		return prometheus.NewCounterFunc(prometheus.CounterOpts(opts), func() float64 {
			return float64(st.Get())
		})
	case *stats.CountersWithSingleLabel:
		return newCountersCollector(opts, st, st.Label())
	default:
		log.Warningf("Unsupported type for %s: %T", opts.Name, v)
		return nil
	}
}

// Exporter registers every published stats variable with a prometheus
// registerer as it gets created.
type Exporter struct {
	namespace string
	reg       prometheus.Registerer
}

// NewExporter returns an Exporter publishing into reg under namespace.
func NewExporter(namespace string, reg prometheus.Registerer) *Exporter {
	return &Exporter{namespace: namespace, reg: reg}
}

// Publish is a stats.NewVarHook.
func (e *Exporter) Publish(name string, v expvar.Var) {
	opts := prometheus.Opts{
		Namespace: e.namespace,
		Name:      metricName(name),
	}
	if h, ok := v.(interface{ Help() string }); ok {
		opts.Help = h.Help()
	}
	coll := NewCollector(opts, v)
	if coll == nil {
		return
	}
	if err := e.reg.Register(coll); err != nil {
		log.Warningf("failed to register %s with prometheus: %v", name, err)
	}
}

// metricName converts a CamelCase stats name into a snake_case metric name.
func metricName(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type countersCollector struct {
	desc *prometheus.Desc
	c    *stats.CountersWithSingleLabel
}

func newCountersCollector(opts prometheus.Opts, c *stats.CountersWithSingleLabel, label string) prometheus.Collector {
	desc := prometheus.NewDesc(
		prometheus.BuildFQName(opts.Namespace, opts.Subsystem, opts.Name),
		opts.Help,
		[]string{label},
		opts.ConstLabels,
	)
	return countersCollector{
		desc: desc,
		c:    c,
	}
}

func (c countersCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c countersCollector) Collect(ch chan<- prometheus.Metric) {
	for k, n := range c.c.Counts() {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(n), k)
	}
}
