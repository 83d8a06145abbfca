package cogniscore

// Metric names a single reading in a Metrics vector.
type Metric string

// Metric names. The five threshold families share their names with the reading
// they grade.
const (
	MetricPerclos           Metric = "perclos"
	MetricYawnRate          Metric = "yawnRate"
	MetricHeartRate         Metric = "heartRate"
	MetricPedalPressure     Metric = "pedalPressure"
	MetricHRV               Metric = "hrv"
	MetricPreviousHeartRate Metric = "previousHeartRate"
	MetricInactivityTime    Metric = "inactivityTime"
)

// AllMetrics lists every Metric in display order.
var AllMetrics = []Metric{
	MetricPerclos,
	MetricYawnRate,
	MetricHeartRate,
	MetricPedalPressure,
	MetricHRV,
	MetricPreviousHeartRate,
	MetricInactivityTime,
}

// Defaults for the optional readings.
const (
	DefaultHRV            = 10.0
	DefaultInactivityTime = 0.0
)

// Metrics is one monitoring sample. The optional readings are pointers; nil
// means the reading was not supplied and its default applies.
//
// No bounds are enforced here. Out-of-range, negative and NaN values are scored
// as whatever the thresholds imply.
type Metrics struct {
	Perclos           float64  `json:"perclos" yaml:"perclos" mapstructure:"perclos"`
	YawnRate          float64  `json:"yawnRate" yaml:"yawnRate" mapstructure:"yawnRate"`
	HeartRate         float64  `json:"heartRate" yaml:"heartRate" mapstructure:"heartRate"`
	PedalPressure     float64  `json:"pedalPressure" yaml:"pedalPressure" mapstructure:"pedalPressure"`
	HRV               *float64 `json:"hrv,omitempty" yaml:"hrv,omitempty" mapstructure:"hrv"`
	PreviousHeartRate *float64 `json:"previousHeartRate,omitempty" yaml:"previousHeartRate,omitempty" mapstructure:"previousHeartRate"`
	InactivityTime    *float64 `json:"inactivityTime,omitempty" yaml:"inactivityTime,omitempty" mapstructure:"inactivityTime"`
}

// Resolved is a Metrics value with every optional reading filled in.
type Resolved struct {
	Perclos           float64
	YawnRate          float64
	HeartRate         float64
	PedalPressure     float64
	HRV               float64
	PreviousHeartRate float64
	InactivityTime    float64
}

// Float returns a pointer to v, for filling optional readings.
func Float(v float64) *float64 {
	return &v
}

// Resolve applies the defaults for absent optional readings: HRV 10 ms,
// inactivity 0 s, previous heart rate equal to the current one.
func (m Metrics) Resolve() Resolved {
	r := Resolved{
		Perclos:           m.Perclos,
		YawnRate:          m.YawnRate,
		HeartRate:         m.HeartRate,
		PedalPressure:     m.PedalPressure,
		HRV:               DefaultHRV,
		PreviousHeartRate: m.HeartRate,
		InactivityTime:    DefaultInactivityTime,
	}
	if m.HRV != nil {
		r.HRV = *m.HRV
	}
	if m.PreviousHeartRate != nil {
		r.PreviousHeartRate = *m.PreviousHeartRate
	}
	if m.InactivityTime != nil {
		r.InactivityTime = *m.InactivityTime
	}
	return r
}

// Get returns the resolved value of a single reading.
func (m Metrics) Get(metric Metric) (float64, bool) {
	if _, ok := m.With(metric, 0); !ok {
		return 0, false
	}
	return readingFor(m.Resolve(), metric), true
}

// With returns a copy of m with one reading replaced. Unknown metrics leave m
// unchanged and report false.
func (m Metrics) With(metric Metric, value float64) (Metrics, bool) {
	switch metric {
	case MetricPerclos:
		m.Perclos = value
	case MetricYawnRate:
		m.YawnRate = value
	case MetricHeartRate:
		m.HeartRate = value
	case MetricPedalPressure:
		m.PedalPressure = value
	case MetricHRV:
		m.HRV = Float(value)
	case MetricPreviousHeartRate:
		m.PreviousHeartRate = Float(value)
	case MetricInactivityTime:
		m.InactivityTime = Float(value)
	default:
		return m, false
	}
	return m, true
}
