package session

import (
	"context"
	"testing"
	"time"

	"github.com/fairway/fairway-api/internal/domain/catalog"
	"github.com/fairway/fairway-api/internal/pkg/erp"
)

type stubCatalogERP struct{}

func (stubCatalogERP) SearchCourses(ctx context.Context, date string) ([]erp.CourseDTO, error) {
	return nil, nil
}

func (stubCatalogERP) CourseTimes(ctx context.Context, date string, courseID int64) ([]erp.TeeTimeDTO, error) {
	return nil, nil
}

type memoryPrefs struct {
	regions map[int64][]string
}

func (m *memoryPrefs) SaveRegions(ctx context.Context, memberKey int64, regions []string) error {
	m.regions[memberKey] = regions
	return nil
}

func (m *memoryPrefs) LoadRegions(ctx context.Context, memberKey int64) ([]string, error) {
	return m.regions[memberKey], nil
}

func newTestRegistry(prefs *memoryPrefs) *Registry {
	svc := catalog.NewService(stubCatalogERP{}, prefs)
	return NewRegistry(svc, RegistryOptions{
		PageSize:  20,
		LoadDelay: 10 * time.Millisecond,
		IdleTTL:   time.Hour,
	})
}

func TestRegistryReturnsSameSessionPerMember(t *testing.T) {
	r := newTestRegistry(&memoryPrefs{regions: map[int64][]string{}})
	defer r.Close()

	first := r.GetOrCreate(7)
	second := r.GetOrCreate(7)
	if first != second {
		t.Fatal("expected one session per member")
	}
	if first.Engine == nil || first.Flow == nil {
		t.Fatal("expected engine and flow on the session")
	}

	other := r.GetOrCreate(8)
	if other == first {
		t.Fatal("expected distinct sessions per member")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", r.Len())
	}
}

func TestRegistrySeedsPersistedRegions(t *testing.T) {
	prefs := &memoryPrefs{regions: map[int64][]string{7: {"강원", "제주"}}}
	r := newTestRegistry(prefs)
	defer r.Close()

	engine := r.EngineFor(7)
	filters := engine.Filters()
	if len(filters.Regions) != 2 || filters.Regions[0] != "강원" {
		t.Fatalf("expected restored regions, got %v", filters.Regions)
	}

	// A member with no stored regions starts clean.
	if f := r.EngineFor(8).Filters(); len(f.Regions) != 0 {
		t.Fatalf("expected empty regions, got %v", f.Regions)
	}
}

func TestRegistryProvidersShareOneSession(t *testing.T) {
	r := newTestRegistry(&memoryPrefs{regions: map[int64][]string{}})
	defer r.Close()

	engine := r.EngineFor(7)
	flow := r.FlowFor(7)
	s := r.GetOrCreate(7)

	if s.Engine != engine || s.Flow != flow {
		t.Fatal("providers must hand out the same session state")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := newTestRegistry(&memoryPrefs{regions: map[int64][]string{}})
	defer r.Close()

	first := r.GetOrCreate(7)
	r.Remove(7)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}

	second := r.GetOrCreate(7)
	if second == first {
		t.Fatal("expected fresh session after removal")
	}
}

func TestRegistrySweepDropsIdleSessions(t *testing.T) {
	r := newTestRegistry(&memoryPrefs{regions: map[int64][]string{}})
	defer r.Close()
	r.idleTTL = 10 * time.Millisecond

	r.GetOrCreate(7)
	time.Sleep(30 * time.Millisecond)
	r.GetOrCreate(8)

	r.sweep()

	if r.Len() != 1 {
		t.Fatalf("expected only the fresh session to survive, got %d", r.Len())
	}
	if _, ok := r.sessions[8]; !ok {
		t.Fatal("expected member 8 to survive the sweep")
	}
}
