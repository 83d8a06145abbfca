package cogniscore

// StatusLevel grades a single reading for colour coding.
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusMild
	StatusModerate
	StatusSevere
	StatusCritical
)

var statusNames = [...]string{"ok", "mild", "moderate", "severe", "critical"}

func (s StatusLevel) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Status is the grade of one reading: the most severe breakpoint it reached,
// if any.
type Status struct {
	Level      StatusLevel `json:"level"`
	Breakpoint string      `json:"breakpoint,omitempty"`
}

// inactivity has no threshold table; its ladder is fixed.
const inactivityWarnSeconds = 5.0

// Status grades one reading against the engine's thresholds. The four most
// severe breakpoints of a family map to critical, severe, moderate and mild;
// anything less is ok.
func (e *Engine) Status(metric Metric, value float64) Status {
	if metric == MetricInactivityTime {
		switch {
		case value > e.inactivityLimit:
			return Status{Level: StatusCritical}
		case value > inactivityWarnSeconds:
			return Status{Level: StatusSevere}
		}
		return Status{Level: StatusOK}
	}

	dir, ok := DirectionOf(metric)
	if !ok {
		return Status{Level: StatusOK}
	}
	table := e.thresholds[metric]
	for i := len(table) - 1; i >= 0; i-- {
		if !dir.Reaches(value, table[i].Value) {
			continue
		}
		rank := len(table) - 1 - i
		if rank > int(StatusCritical)-int(StatusMild) {
			break
		}
		return Status{Level: StatusCritical - StatusLevel(rank), Breakpoint: table[i].Name}
	}
	return Status{Level: StatusOK}
}
