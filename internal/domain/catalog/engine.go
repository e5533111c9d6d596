package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/fairway/fairway-api/internal/pkg/dateutil"
)

const (
	defaultPageSize  = 20
	defaultLoadDelay = 500 * time.Millisecond
	maxRecentSearch  = 10
	monthsAhead      = 3
)

var defaultRecentSearches = []string{"아세코밸리", "휘슬링락", "우정힐스", "화순CC", "스카이72"}

// Options configures a catalog engine instance.
type Options struct {
	PageSize       int
	LoadDelay      time.Duration
	InitialRegions []string
	Now            time.Time
}

// Engine holds the authoritative course list for the selected date and
// derives the visible page from raw data + filters + sort. One engine per
// member session; it replaces the global client-side store with an
// explicit, constructor-injected state container.
type Engine struct {
	mu sync.Mutex

	selectedDate    string
	availableMonths []time.Time

	raw       []Course
	processed []Course
	visible   []Course
	hasMore   bool

	loadingMore bool
	pageSize    int
	loadDelay   time.Duration

	filters    Filters
	sortOption SortOption

	// Auxiliary UI state
	expandedCourseID int64
	filterSheetOpen  bool
	sortSheetOpen    bool

	searchQuery    string
	searchResults  []Course
	recentSearches []string

	// Monotonic fetch token per date key; stale SetRawCourses calls are
	// discarded instead of last-write-wins.
	generations map[string]uint64
}

// NewEngine creates a catalog engine. InitialRegions seeds the persisted
// region-filter subset; everything else starts empty.
func NewEngine(opts Options) *Engine {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.LoadDelay < 0 {
		opts.LoadDelay = defaultLoadDelay
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	recent := make([]string, len(defaultRecentSearches))
	copy(recent, defaultRecentSearches)

	return &Engine{
		selectedDate:    dateutil.FormatYmd(now),
		availableMonths: dateutil.MonthsRange(now, monthsAhead),
		pageSize:        opts.PageSize,
		loadDelay:       opts.LoadDelay,
		filters:         Filters{Regions: opts.InitialRegions},
		sortOption:      SortDefault,
		recentSearches:  recent,
		generations:     make(map[string]uint64),
	}
}

// SelectedDate returns the current date key (YYYYMMDD).
func (e *Engine) SelectedDate() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedDate
}

// SetSelectedDate switches the engine to a new date key.
func (e *Engine) SetSelectedDate(date string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedDate = date
}

// AvailableMonths returns the bookable month range.
func (e *Engine) AvailableMonths() []time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	months := make([]time.Time, len(e.availableMonths))
	copy(months, e.availableMonths)
	return months
}

// BeginFetch registers an in-flight fetch for a date key and returns its
// generation token. A later fetch for the same key invalidates the token.
func (e *Engine) BeginFetch(date string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generations[date]++
	return e.generations[date]
}

// SetRawCourses replaces the raw course list for a date, unless the
// generation token is stale or the engine has moved to another date.
// Returns whether the list was applied. An empty list is valid and yields
// an empty display.
func (e *Engine) SetRawCourses(date string, generation uint64, courses []Course) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if generation != e.generations[date] || date != e.selectedDate {
		return false
	}

	e.raw = courses
	e.recomputeLocked()
	return true
}

// ApplyFilters replaces the active filter set wholesale and closes the
// filter sheet.
func (e *Engine) ApplyFilters(filters Filters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters = filters
	e.filterSheetOpen = false
	e.recomputeLocked()
}

// ResetFilters empties all five selection sets.
func (e *Engine) ResetFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters = Filters{}
	e.recomputeLocked()
}

// ApplySort replaces the active sort option and closes the sort sheet.
func (e *Engine) ApplySort(option SortOption) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sortOption = option
	e.sortSheetOpen = false
	e.recomputeLocked()
}

// ResetSort reverts to the default price-ascending order.
func (e *Engine) ResetSort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sortOption = SortDefault
	e.recomputeLocked()
}

// recomputeLocked rebuilds the derived views from scratch. The visible
// list resets to the first page; it is never patched incrementally.
func (e *Engine) recomputeLocked() {
	e.processed = Recompute(e.raw, e.filters, e.sortOption)

	end := e.pageSize
	if end > len(e.processed) {
		end = len(e.processed)
	}
	e.visible = e.processed[:end:end]
	e.hasMore = len(e.processed) > len(e.visible)
}

// LoadMore appends the next page of the already-filtered/sorted list to
// the visible list after a simulated fixed delay. It is an idempotent
// no-op while a load is in flight or when no further pages remain; the
// return value reports whether a load was started.
func (e *Engine) LoadMore() bool {
	e.mu.Lock()
	if e.loadingMore || !e.hasMore {
		e.mu.Unlock()
		return false
	}
	e.loadingMore = true
	delay := e.loadDelay
	e.mu.Unlock()

	go func() {
		time.Sleep(delay)

		e.mu.Lock()
		defer e.mu.Unlock()

		current := len(e.visible)
		end := current + e.pageSize
		if end > len(e.processed) {
			end = len(e.processed)
		}
		if current < end {
			e.visible = append(e.visible, e.processed[current:end]...)
		}
		e.hasMore = len(e.processed) > len(e.visible)
		e.loadingMore = false
	}()

	return true
}

// Page is a snapshot of the displayable catalog state.
type Page struct {
	Date        string     `json:"date"`
	Courses     []Course   `json:"courses"`
	HasMore     bool       `json:"has_more"`
	LoadingMore bool       `json:"loading_more"`
	Total       int        `json:"total"`
	Filters     Filters    `json:"filters"`
	// IsFilterActive drives the filter-button highlight in the client.
	IsFilterActive bool       `json:"is_filter_active"`
	SortOption     SortOption `json:"sort_option"`
}

// VisiblePage snapshots the current visible list and its derived flags.
func (e *Engine) VisiblePage() Page {
	e.mu.Lock()
	defer e.mu.Unlock()

	courses := make([]Course, len(e.visible))
	copy(courses, e.visible)

	return Page{
		Date:           e.selectedDate,
		Courses:        courses,
		HasMore:        e.hasMore,
		LoadingMore:    e.loadingMore,
		Total:          len(e.processed),
		Filters:        e.filters,
		IsFilterActive: e.filters.Active(),
		SortOption:     e.sortOption,
	}
}

// CourseByID looks a course up in the raw list.
func (e *Engine) CourseByID(id int64) (Course, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.raw {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// ToggleCourse expands the given course row, collapsing it when it was
// already expanded.
func (e *Engine) ToggleCourse(id int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.expandedCourseID == id {
		e.expandedCourseID = 0
	} else {
		e.expandedCourseID = id
	}
	return e.expandedCourseID
}

// ExpandedCourseID returns the currently expanded row, 0 for none.
func (e *Engine) ExpandedCourseID() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expandedCourseID
}

// ToggleFilterSheet opens or closes the filter selection sheet.
func (e *Engine) ToggleFilterSheet(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filterSheetOpen = open
}

// ToggleSortSheet opens or closes the sort selection sheet.
func (e *Engine) ToggleSortSheet(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sortSheetOpen = open
}

// SheetState reports the filter/sort sheet visibility.
func (e *Engine) SheetState() (filterOpen, sortOpen bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filterSheetOpen, e.sortSheetOpen
}

// Filters returns the active filter set.
func (e *Engine) Filters() Filters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// Sort returns the active sort option.
func (e *Engine) Sort() SortOption {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortOption
}

// Search filters the raw list by a case-insensitive substring match on
// course name or address. An empty query clears the results.
func (e *Engine) Search(query string) []Course {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searchQuery = query
	if strings.TrimSpace(query) == "" {
		e.searchResults = nil
		return nil
	}

	needle := strings.ToLower(query)
	var results []Course
	for _, c := range e.raw {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Address), needle) {
			results = append(results, c)
		}
	}
	e.searchResults = results

	out := make([]Course, len(results))
	copy(out, results)
	return out
}

// SelectSearchResult resolves a search pick: the current query is recorded
// as a recent search (deduped, capped) and the search state clears.
func (e *Engine) SelectSearchResult(courseID int64) (Course, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var selected Course
	found := false
	for _, c := range e.raw {
		if c.ID == courseID {
			selected = c
			found = true
			break
		}
	}
	if !found {
		return Course{}, false
	}

	if q := strings.TrimSpace(e.searchQuery); q != "" {
		recent := []string{e.searchQuery}
		for _, s := range e.recentSearches {
			if s != e.searchQuery {
				recent = append(recent, s)
			}
		}
		if len(recent) > maxRecentSearch {
			recent = recent[:maxRecentSearch]
		}
		e.recentSearches = recent
	}

	e.searchQuery = ""
	e.searchResults = nil
	return selected, true
}

// RecentSearches returns the recent search terms, most recent first.
func (e *Engine) RecentSearches() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.recentSearches))
	copy(out, e.recentSearches)
	return out
}

// RemoveRecentSearch drops the recent search at index. Out-of-range
// indices are ignored.
func (e *Engine) RemoveRecentSearch(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.recentSearches) {
		return
	}
	e.recentSearches = append(e.recentSearches[:index], e.recentSearches[index+1:]...)
}

// ClearRecentSearches removes all recent search terms.
func (e *Engine) ClearRecentSearches() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recentSearches = nil
}
