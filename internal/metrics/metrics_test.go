package metrics

import (
	"context"
	"errors"
	"testing"
)

func TestSnapshotCounters(t *testing.T) {
	m := &Metrics{EndpointMetrics: make(map[string]*EndpointMetrics)}

	m.IncrementRequests(true, 10)
	m.IncrementRequests(false, 30)
	m.IncrementMutation(ModuleEstimate)
	m.IncrementMutation(ModuleKPI)
	m.IncrementMutation(ModuleKPI)
	m.IncrementMutation("unknown")
	m.IncrementExport(true)
	m.IncrementExport(false)
	m.IncrementStorageLoad(true)
	m.IncrementStorageLoad(false)
	m.IncrementStorageSave(true)
	m.TrackEndpoint("/api/v1/kpi", "GET", 200, 4)
	m.TrackEndpoint("/api/v1/kpi", "GET", 500, 6)

	s := m.Snapshot()

	if s.Requests.Total != 2 || s.Requests.Failed != 1 || s.Requests.AvgLatencyMs != 20 {
		t.Errorf("requests: %+v", s.Requests)
	}
	if s.Mutations.Estimate != 1 || s.Mutations.KPI != 2 || s.Mutations.Page != 0 {
		t.Errorf("mutations: %+v", s.Mutations)
	}
	if s.Exports.Generated != 1 || s.Exports.Errors != 1 {
		t.Errorf("exports: %+v", s.Exports)
	}
	if s.Storage.Loads != 2 || s.Storage.Fallbacks != 1 || s.Storage.Saves != 1 {
		t.Errorf("storage: %+v", s.Storage)
	}

	ep, ok := s.Endpoints["GET /api/v1/kpi"]
	if !ok {
		t.Fatal("endpoint não registrado")
	}
	if ep.Requests != 2 || ep.Errors != 1 || ep.ErrorRate != 50 || ep.AvgLatencyMs != 5 {
		t.Errorf("endpoint: %+v", ep)
	}
}

func TestCheckStorageHealth(t *testing.T) {
	ok := CheckStorageHealth(context.Background(), func(context.Context) error { return nil })
	if ok.Status != "healthy" {
		t.Errorf("esperado healthy, obtido %s", ok.Status)
	}

	bad := CheckStorageHealth(context.Background(), func(context.Context) error { return errors.New("sem disco") })
	if bad.Status != "unhealthy" || bad.Message != "sem disco" {
		t.Errorf("esperado unhealthy, obtido %+v", bad)
	}

	if CheckStorageHealth(context.Background(), nil).Status != "unhealthy" {
		t.Error("ping nil deve ser unhealthy")
	}
}

func TestDetermineOverallStatus(t *testing.T) {
	cases := []struct {
		components map[string]HealthStatus
		want       string
	}{
		{map[string]HealthStatus{"a": {Status: "healthy"}}, "healthy"},
		{map[string]HealthStatus{"a": {Status: "healthy"}, "b": {Status: "degraded"}}, "degraded"},
		{map[string]HealthStatus{"a": {Status: "degraded"}, "b": {Status: "unhealthy"}}, "unhealthy"},
	}
	for _, tc := range cases {
		if got := DetermineOverallStatus(tc.components); got != tc.want {
			t.Errorf("DetermineOverallStatus(%v) = %s, want %s", tc.components, got, tc.want)
		}
	}
}
