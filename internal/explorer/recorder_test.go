package explorer

import (
	"sync"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
)

// --- recording renderer ---

type push struct {
	View      string
	Year      int
	Cause     string
	Counts    []domain.Count
	Incidents []domain.Incident
}

type recorder struct {
	mu     sync.Mutex
	pushes []push
	labels chan int
}

func newRecorder() *recorder {
	return &recorder{labels: make(chan int, 64)}
}

func (r *recorder) RefreshYearLabel(year int) {
	r.record(push{View: "year_label", Year: year})
	r.labels <- year
}

func (r *recorder) RefreshMap(incidents []domain.Incident) {
	r.record(push{View: "map", Incidents: incidents})
}

func (r *recorder) RefreshBarChart(causeCounts []domain.Count, year int) {
	r.record(push{View: "bar_chart", Year: year, Counts: causeCounts})
}

func (r *recorder) RefreshHeatmap(stateCounts []domain.Count, cause string, year int) {
	r.record(push{View: "heatmap", Year: year, Cause: cause, Counts: stateCounts})
}

func (r *recorder) record(p push) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, p)
}

// take returns and clears the recorded pushes.
func (r *recorder) take() []push {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pushes
	r.pushes = nil
	for len(r.labels) > 0 {
		<-r.labels
	}
	return out
}

func views(pushes []push) []string {
	out := make([]string, len(pushes))
	for i, p := range pushes {
		out[i] = p.View
	}
	return out
}
