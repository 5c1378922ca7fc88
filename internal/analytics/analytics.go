// Package analytics produces the simulated traffic figures shown on the admin dashboard.
package analytics

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const defaultDays = 30

var periodDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"12m": 365,
}

// Days maps a period code to a day count. Unknown periods fall back to 30 days.
func Days(period string) int {
	if d, ok := periodDays[period]; ok {
		return d
	}
	return defaultDays
}

type DayStats struct {
	Date               string `json:"date"`
	Visitors           int    `json:"visitors"`
	PageViews          int    `json:"pageViews"`
	Sessions           int    `json:"sessions"`
	BounceRate         int    `json:"bounceRate"`
	AvgSessionDuration int    `json:"avgSessionDuration"`
}

type Totals struct {
	Visitors           int
	PageViews          int
	Sessions           int
	AvgBounceRate      int
	AvgSessionDuration int
}

type Summary struct {
	TotalVisitors      int `json:"totalVisitors"`
	TotalPageViews     int `json:"totalPageViews"`
	TotalSessions      int `json:"totalSessions"`
	AvgBounceRate      int `json:"avgBounceRate"`
	AvgSessionDuration int `json:"avgSessionDuration"`
	VisitorsChange     int `json:"visitorsChange"`
	PageViewsChange    int `json:"pageViewsChange"`
}

type Dashboard struct {
	Period         string          `json:"period"`
	Summary        Summary         `json:"summary"`
	TimeSeries     []DayStats      `json:"timeSeries"`
	TopPages       []PageStat      `json:"topPages"`
	TrafficSources []TrafficSource `json:"trafficSources"`
	Devices        DeviceShare     `json:"devices"`
	Geographic     []CountryStat   `json:"geographic"`
}

type SeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type MetricSeries struct {
	Total int           `json:"total"`
	Data  []SeriesPoint `json:"data"`
}

// Generator draws simulated samples. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a generator. A nil src seeds from the runtime; a nil now uses time.Now.
func NewGenerator(src rand.Source, now func() time.Time) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rand.New(src), now: now}
}

// between returns a value in [lo, lo+span).
func (g *Generator) between(lo, span int) int {
	return lo + g.rng.IntN(span)
}

// TimeSeries returns one sample per day, oldest first and ending today (UTC).
func (g *Generator) TimeSeries(period string) []DayStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	days := Days(period)
	today := g.now().UTC()
	series := make([]DayStats, 0, days)
	for i := days - 1; i >= 0; i-- {
		series = append(series, DayStats{
			Date:               today.AddDate(0, 0, -i).Format(time.DateOnly),
			Visitors:           g.between(500, 1000),
			PageViews:          g.between(1500, 3000),
			Sessions:           g.between(400, 800),
			BounceRate:         g.between(20, 30),
			AvgSessionDuration: g.between(120, 300),
		})
	}
	return series
}

// Sum aggregates a series. Averages are rounded to the nearest integer.
func Sum(series []DayStats) Totals {
	var t Totals
	if len(series) == 0 {
		return t
	}
	var bounce, duration int
	for _, d := range series {
		t.Visitors += d.Visitors
		t.PageViews += d.PageViews
		t.Sessions += d.Sessions
		bounce += d.BounceRate
		duration += d.AvgSessionDuration
	}
	n := float64(len(series))
	t.AvgBounceRate = int(math.Round(float64(bounce) / n))
	t.AvgSessionDuration = int(math.Round(float64(duration) / n))
	return t
}

// Dashboard assembles the full report for period.
func (g *Generator) Dashboard(period string) Dashboard {
	series := g.TimeSeries(period)
	totals := Sum(series)

	g.mu.Lock()
	visitorsChange := g.between(-5, 20)
	pageViewsChange := g.between(-5, 25)
	g.mu.Unlock()

	return Dashboard{
		Period: period,
		Summary: Summary{
			TotalVisitors:      totals.Visitors,
			TotalPageViews:     totals.PageViews,
			TotalSessions:      totals.Sessions,
			AvgBounceRate:      totals.AvgBounceRate,
			AvgSessionDuration: totals.AvgSessionDuration,
			VisitorsChange:     visitorsChange,
			PageViewsChange:    pageViewsChange,
		},
		TimeSeries:     series,
		TopPages:       TopPages(),
		TrafficSources: TrafficSources(),
		Devices:        Devices(),
		Geographic:     Geographic(),
	}
}

// Report returns the single-metric view when metric is recognised, otherwise the full dashboard.
func (g *Generator) Report(period, metric string) any {
	switch metric {
	case "visitors", "pageViews":
		series := g.TimeSeries(period)
		totals := Sum(series)
		out := MetricSeries{Data: make([]SeriesPoint, 0, len(series))}
		for _, d := range series {
			value := d.Visitors
			if metric == "pageViews" {
				value = d.PageViews
			}
			out.Data = append(out.Data, SeriesPoint{Date: d.Date, Value: value})
		}
		out.Total = totals.Visitors
		if metric == "pageViews" {
			out.Total = totals.PageViews
		}
		return out
	case "topPages":
		return map[string]any{"pages": TopPages()}
	case "traffic":
		return map[string]any{"sources": TrafficSources()}
	case "devices":
		return map[string]any{"devices": Devices()}
	case "geographic":
		return map[string]any{"countries": Geographic()}
	default:
		return g.Dashboard(period)
	}
}
