package metrics

import (
	"sync/atomic"
	"time"
)

// ClassifyMetric summarizes the work a classifier has done since it started
// or was last reset.
type ClassifyMetric struct {
	StartTime       time.Time
	Duration        time.Duration
	Classifications int // Sizes classified and cached
	Applications    int // Move applications (successor computations)
	CacheHits       int
	Cycles          int // Back edges to a size still in progress
	HorizonCutoffs  int // Sizes left unexpanded outside the horizon
}

type Collector interface {
	Start()
	AddClassification()
	AddApplication()
	AddCacheHit()
	AddCycle()
	AddHorizonCutoff()
	Complete() ClassifyMetric
}

type collector struct {
	startTime       time.Time
	classifications atomic.Int64
	applications    atomic.Int64
	cacheHits       atomic.Int64
	cycles          atomic.Int64
	horizonCutoffs  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.classifications.Store(0)
	m.applications.Store(0)
	m.cacheHits.Store(0)
	m.cycles.Store(0)
	m.horizonCutoffs.Store(0)
}

func (m *collector) AddClassification() {
	m.classifications.Add(1)
}

func (m *collector) AddApplication() {
	m.applications.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddCycle() {
	m.cycles.Add(1)
}

func (m *collector) AddHorizonCutoff() {
	m.horizonCutoffs.Add(1)
}

func (m *collector) Complete() ClassifyMetric {
	return ClassifyMetric{
		StartTime:       m.startTime,
		Duration:        time.Since(m.startTime),
		Classifications: int(m.classifications.Load()),
		Applications:    int(m.applications.Load()),
		CacheHits:       int(m.cacheHits.Load()),
		Cycles:          int(m.cycles.Load()),
		HorizonCutoffs:  int(m.horizonCutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) AddClassification()       {}
func (m *dummyCollector) AddApplication()          {}
func (m *dummyCollector) AddCacheHit()             {}
func (m *dummyCollector) AddCycle()                {}
func (m *dummyCollector) AddHorizonCutoff()        {}
func (m *dummyCollector) Complete() ClassifyMetric { return ClassifyMetric{} }
