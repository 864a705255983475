package metrics

import (
	"time"
)

type SearchMetric struct {
	Algorithm    string
	Depth        int // configured depth for negamax, deepest path reached for MCTS
	Duration     time.Duration
	Episodes     int // MCTS simulations
	Expansions   int
	TerminalHits int
	Nodes        int // negamax nodes visited
	Cutoffs      int
}

type MoveMetric struct {
	Step   int
	Player int // +1 or -1
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // +1, -1 or 0 for a draw
	Discs1         int
	Discs2         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics for one search at a time. Searches run on a
// single goroutine, so implementations need no locking.
type Collector interface {
	Start(algorithm string, depth int)
	AddEpisode()
	AddExpansion()
	AddTerminal()
	AddNode()
	AddCutoff()
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	metric    SearchMetric
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, depth int) {
	m.metric = SearchMetric{Algorithm: algorithm, Depth: depth}
	m.startTime = time.Now()
}

func (m *collector) AddEpisode() {
	m.metric.Episodes++
}

func (m *collector) AddExpansion() {
	m.metric.Expansions++
}

func (m *collector) AddTerminal() {
	m.metric.TerminalHits++
}

func (m *collector) AddNode() {
	m.metric.Nodes++
}

func (m *collector) AddCutoff() {
	m.metric.Cutoffs++
}

func (m *collector) ObserveDepth(depth int) {
	m.metric.Depth = max(m.metric.Depth, depth)
}

func (m *collector) Complete() SearchMetric {
	m.metric.Duration = time.Since(m.startTime)
	return m.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, depth int) {}
func (m *dummyCollector) AddEpisode()                       {}
func (m *dummyCollector) AddExpansion()                     {}
func (m *dummyCollector) AddTerminal()                      {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddCutoff()                        {}
func (m *dummyCollector) ObserveDepth(depth int)            {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
