package domain

// NodeReport is the per-node outcome of one frame.
type NodeReport struct {
	ID         NodeID        `json:"id"`
	Name       string        `json:"name"`
	CacheType  string        `json:"cacheType"`
	Status     ProcessStatus `json:"status"`
	Priority   string        `json:"priority,omitempty"`
	ReuseCount int           `json:"reuseCount"`
	Gamut      string        `json:"gamut,omitempty"`
}

// FrameReport summarizes what the scheduler decided for one frame.
type FrameReport struct {
	Frame        uint64       `json:"frame"`
	Mode         Mode         `json:"mode"`
	Nodes        []NodeReport `json:"nodes"`
	Posted       []NodeID     `json:"posted,omitempty"`
	Purged       []NodeID     `json:"purged,omitempty"`
	Demoted      []NodeID     `json:"demoted,omitempty"`
	Completed    []NodeID     `json:"completed,omitempty"`
	Skipped      []NodeID     `json:"skipped,omitempty"`
	Discarded    []NodeID     `json:"discarded,omitempty"`
	Evicted      []NodeID     `json:"evicted,omitempty"`
	ForceUpdate  []NodeID     `json:"forceUpdate,omitempty"`
	Deferred     int          `json:"deferred"`
	WindowCount  int          `json:"windowCount"`
	IdleReleased bool         `json:"idleReleased,omitempty"`
	Phases       int          `json:"phases,omitempty"`
}

// Run is the stored outcome of replaying a script.
type Run struct {
	Script string        `json:"script"`
	Digest string        `json:"digest"`
	Frames []FrameReport `json:"frames"`
}
