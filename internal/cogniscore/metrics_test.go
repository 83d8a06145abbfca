package cogniscore

import "testing"

func TestResolveDefaults(t *testing.T) {
	r := Metrics{Perclos: 10, YawnRate: 1, HeartRate: 68, PedalPressure: 80}.Resolve()
	if r.HRV != 10 {
		t.Errorf("HRV = %v, want 10", r.HRV)
	}
	if r.PreviousHeartRate != 68 {
		t.Errorf("PreviousHeartRate = %v, want 68", r.PreviousHeartRate)
	}
	if r.InactivityTime != 0 {
		t.Errorf("InactivityTime = %v, want 0", r.InactivityTime)
	}
}

func TestResolveKeepsSuppliedValues(t *testing.T) {
	r := Metrics{HeartRate: 68, HRV: Float(0), PreviousHeartRate: Float(90), InactivityTime: Float(4)}.Resolve()
	if r.HRV != 0 || r.PreviousHeartRate != 90 || r.InactivityTime != 4 {
		t.Errorf("Resolve() = %+v", r)
	}
}

func TestWithAndGet(t *testing.T) {
	m := baseline()
	for i, metric := range AllMetrics {
		v := float64(i + 1)
		next, ok := m.With(metric, v)
		if !ok {
			t.Fatalf("With(%s) not accepted", metric)
		}
		got, ok := next.Get(metric)
		if !ok || got != v {
			t.Errorf("Get(%s) = %v, %v; want %v", metric, got, ok, v)
		}
	}
	if _, ok := m.With("blinkRate", 1); ok {
		t.Error("With accepted unknown metric")
	}
	if _, ok := m.Get("blinkRate"); ok {
		t.Error("Get accepted unknown metric")
	}
}

func TestWithDoesNotAliasOptionalReadings(t *testing.T) {
	m := baseline()
	next, _ := m.With(MetricHRV, 3)
	if *m.HRV != 15 {
		t.Errorf("original HRV changed to %v", *m.HRV)
	}
	if *next.HRV != 3 {
		t.Errorf("next HRV = %v, want 3", *next.HRV)
	}
}
