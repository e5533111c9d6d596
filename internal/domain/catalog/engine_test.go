package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/fairway/fairway-api/internal/pkg/dateutil"
)

func manyCourses(n int) []Course {
	courses := make([]Course, n)
	for i := 0; i < n; i++ {
		courses[i] = course(int64(i+1), fmt.Sprintf("코스%02d", i+1), "경기도", int64(10000*(i+1)), "0800")
	}
	return courses
}

func newTestEngine() *Engine {
	return NewEngine(Options{LoadDelay: 20 * time.Millisecond})
}

func setCourses(t *testing.T, e *Engine, courses []Course) {
	t.Helper()
	date := e.SelectedDate()
	gen := e.BeginFetch(date)
	if !e.SetRawCourses(date, gen, courses) {
		t.Fatal("fresh generation was rejected")
	}
}

func TestEngineFirstPageCapped(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, manyCourses(25))

	page := e.VisiblePage()
	if len(page.Courses) != 20 {
		t.Fatalf("expected 20 visible, got %d", len(page.Courses))
	}
	if !page.HasMore {
		t.Fatal("expected has_more with 25 total")
	}
	if page.Total != 25 {
		t.Fatalf("expected total 25, got %d", page.Total)
	}
}

func TestEngineLoadMoreAppendsNextPage(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, manyCourses(25))

	if !e.LoadMore() {
		t.Fatal("expected load to start")
	}

	// Second call while pending must be a no-op.
	if e.LoadMore() {
		t.Fatal("expected pending load to block a second start")
	}

	time.Sleep(60 * time.Millisecond)

	page := e.VisiblePage()
	if len(page.Courses) != 25 {
		t.Fatalf("expected 25 visible after load, got %d", len(page.Courses))
	}
	if page.HasMore {
		t.Fatal("expected has_more to clear")
	}
	if page.LoadingMore {
		t.Fatal("expected loading flag to clear")
	}

	// Nothing left to load.
	if e.LoadMore() {
		t.Fatal("expected no-op when all pages are visible")
	}
}

func TestEngineFilterChangeResetsToFirstPage(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, manyCourses(25))

	if !e.LoadMore() {
		t.Fatal("expected load to start")
	}
	time.Sleep(60 * time.Millisecond)

	e.ApplyFilters(Filters{GreenFees: []string{GreenFeeOver150k}})

	page := e.VisiblePage()
	// Fees run 10000..250000; eleven courses sit at or above 150000.
	if page.Total != 11 {
		t.Fatalf("expected 11 matching, got %d", page.Total)
	}
	if len(page.Courses) != 11 {
		t.Fatalf("expected visible reset to the filtered first page, got %d", len(page.Courses))
	}
	if page.HasMore {
		t.Fatal("expected no further pages")
	}
}

func TestEnginePageReportsFilterActivity(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, manyCourses(3))

	if e.VisiblePage().IsFilterActive {
		t.Fatal("expected no filter activity on a fresh engine")
	}

	e.ApplyFilters(Filters{Regions: []string{"강원"}})
	if !e.VisiblePage().IsFilterActive {
		t.Fatal("expected filter activity after apply")
	}

	e.ResetFilters()
	if e.VisiblePage().IsFilterActive {
		t.Fatal("expected reset to clear filter activity")
	}
}

func TestEngineVisibleIsPrefixOfProcessed(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, manyCourses(25))

	e.ApplySort(SortName)

	page := e.VisiblePage()
	full := Recompute(manyCourses(25), Filters{}, SortName)
	for i, c := range page.Courses {
		if c.ID != full[i].ID {
			t.Fatalf("visible[%d]=%d is not a prefix of the processed order (want %d)", i, c.ID, full[i].ID)
		}
	}
}

func TestEngineStaleGenerationDiscarded(t *testing.T) {
	e := newTestEngine()
	date := e.SelectedDate()

	first := e.BeginFetch(date)
	second := e.BeginFetch(date)

	if e.SetRawCourses(date, first, manyCourses(5)) {
		t.Fatal("stale generation was applied")
	}
	if !e.SetRawCourses(date, second, manyCourses(3)) {
		t.Fatal("current generation was rejected")
	}

	if got := e.VisiblePage().Total; got != 3 {
		t.Fatalf("expected 3 courses from the winning fetch, got %d", got)
	}
}

func TestEngineFetchForOldDateDiscarded(t *testing.T) {
	e := newTestEngine()
	date := e.SelectedDate()
	gen := e.BeginFetch(date)

	// Any date other than the one the fetch started for.
	e.SetSelectedDate(dateutil.FormatYmd(time.Now().AddDate(0, 0, 1)))

	if e.SetRawCourses(date, gen, manyCourses(5)) {
		t.Fatal("fetch for an abandoned date was applied")
	}
}

func TestEngineEmptyFetchYieldsEmptyPage(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, nil)

	page := e.VisiblePage()
	if len(page.Courses) != 0 || page.HasMore {
		t.Fatalf("expected empty page, got %d courses has_more=%v", len(page.Courses), page.HasMore)
	}
}

func TestEngineToggleCourse(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, manyCourses(3))

	if got := e.ToggleCourse(2); got != 2 {
		t.Fatalf("expected course 2 expanded, got %d", got)
	}
	if got := e.ToggleCourse(3); got != 3 {
		t.Fatalf("expected expansion to move to course 3, got %d", got)
	}
	if got := e.ToggleCourse(3); got != 0 {
		t.Fatalf("expected re-toggle to collapse, got %d", got)
	}
}

func TestEngineSheetToggles(t *testing.T) {
	e := newTestEngine()

	e.ToggleFilterSheet(true)
	e.ToggleSortSheet(true)
	filterOpen, sortOpen := e.SheetState()
	if !filterOpen || !sortOpen {
		t.Fatal("expected both sheets open")
	}

	e.ApplyFilters(Filters{})
	e.ApplySort(SortName)
	filterOpen, sortOpen = e.SheetState()
	if filterOpen || sortOpen {
		t.Fatal("expected apply to close the sheets")
	}
}

func TestEngineSearchMatchesNameAndAddress(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, []Course{
		course(1, "휘슬링락", "강원도 춘천시", 80000, "0800"),
		course(2, "스카이72", "인천광역시 중구", 90000, "0900"),
	})

	if got := e.Search("휘슬"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("name search failed: %v", got)
	}
	if got := e.Search("인천"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("address search failed: %v", got)
	}
	if got := e.Search("  "); got != nil {
		t.Fatalf("blank query should clear results, got %v", got)
	}
}

func TestEngineRecentSearchesDedupedAndCapped(t *testing.T) {
	e := newTestEngine()
	setCourses(t, e, []Course{course(1, "휘슬링락", "강원도", 80000, "0800")})

	for i := 0; i < 12; i++ {
		e.Search(fmt.Sprintf("검색어%d", i))
		if _, ok := e.SelectSearchResult(1); !ok {
			t.Fatal("course lookup failed")
		}
	}

	recent := e.RecentSearches()
	if len(recent) != 10 {
		t.Fatalf("expected cap at 10, got %d", len(recent))
	}
	if recent[0] != "검색어11" {
		t.Fatalf("expected most recent first, got %q", recent[0])
	}

	// Re-searching an existing term moves it to the front without
	// duplicating it.
	e.Search("검색어5")
	e.SelectSearchResult(1)
	recent = e.RecentSearches()
	if recent[0] != "검색어5" {
		t.Fatalf("expected repeated term first, got %q", recent[0])
	}
	count := 0
	for _, s := range recent {
		if s == "검색어5" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected term once, found %d times", count)
	}
}

func TestEngineRemoveRecentSearch(t *testing.T) {
	e := newTestEngine()

	initial := e.RecentSearches()
	if len(initial) == 0 {
		t.Fatal("expected seeded recent searches")
	}

	e.RemoveRecentSearch(0)
	if got := e.RecentSearches(); len(got) != len(initial)-1 || got[0] == initial[0] {
		t.Fatalf("expected first entry removed, got %v", got)
	}

	e.RemoveRecentSearch(99)
	if got := e.RecentSearches(); len(got) != len(initial)-1 {
		t.Fatal("out-of-range removal should be ignored")
	}

	e.ClearRecentSearches()
	if got := e.RecentSearches(); len(got) != 0 {
		t.Fatalf("expected cleared list, got %v", got)
	}
}

func TestEngineInitialRegionsSeedFilters(t *testing.T) {
	e := NewEngine(Options{InitialRegions: []string{"강원"}})

	if f := e.Filters(); len(f.Regions) != 1 || f.Regions[0] != "강원" {
		t.Fatalf("expected seeded region filter, got %v", f)
	}
}
