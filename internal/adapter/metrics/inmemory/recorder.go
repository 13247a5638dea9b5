package inmemory

import "sync"

type Snapshot struct {
	ExtractionTotal uint64            `json:"extraction_total"`
	CapReached      uint64            `json:"cap_reached"`
	Cancelled       uint64            `json:"cancelled"`
	FlushFailure    uint64            `json:"flush_failure"`
	ByResourceType  map[string]uint64 `json:"by_resource_type"`
	YieldByType     map[string]uint64 `json:"yield_by_type"`
}

type Recorder struct {
	mu          sync.Mutex
	extractions uint64
	capReached  uint64
	cancelled   uint64
	failures    uint64
	byType      map[string]uint64
	yieldByType map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byType:      map[string]uint64{},
		yieldByType: map[string]uint64{},
	}
}

func (r *Recorder) RecordExtraction(resourceType string, yield int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractions++
	r.byType[resourceType]++
	if yield > 0 {
		r.yieldByType[resourceType] += uint64(yield)
	}
}

func (r *Recorder) RecordCapReached(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capReached++
}

func (r *Recorder) RecordCancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func (r *Recorder) RecordFlushFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ExtractionTotal: r.extractions,
		CapReached:      r.capReached,
		Cancelled:       r.cancelled,
		FlushFailure:    r.failures,
		ByResourceType:  make(map[string]uint64, len(r.byType)),
		YieldByType:     make(map[string]uint64, len(r.yieldByType)),
	}
	for k, v := range r.byType {
		out.ByResourceType[k] = v
	}
	for k, v := range r.yieldByType {
		out.YieldByType[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
