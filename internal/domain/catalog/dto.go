package catalog

// ApplyFiltersRequest carries the complete five-set filter structure; the
// engine replaces its filter state wholesale, never field-by-field.
type ApplyFiltersRequest struct {
	Regions        []string `json:"regions"`
	TeeTimes       []string `json:"tee_times"`
	GreenFees      []string `json:"green_fees"`
	Players        []int    `json:"players"`
	PaymentMethods []string `json:"payment_methods"`
}

// Filters converts the request into the domain filter set.
func (r ApplyFiltersRequest) Filters() Filters {
	return Filters{
		Regions:        r.Regions,
		TeeTimes:       r.TeeTimes,
		GreenFees:      r.GreenFees,
		Players:        r.Players,
		PaymentMethods: r.PaymentMethods,
	}
}

// ApplySortRequest selects a sort option.
type ApplySortRequest struct {
	SortOption string `json:"sort_option" validate:"required,sortoption"`
}

// LoadMoreResponse reports whether a page load was started.
type LoadMoreResponse struct {
	Started     bool `json:"started"`
	LoadingMore bool `json:"loading_more"`
}

// SearchResponse carries search results plus the recent-search list.
type SearchResponse struct {
	Query          string   `json:"query"`
	Results        []Course `json:"results"`
	RecentSearches []string `json:"recent_searches"`
}

// SelectSearchResultRequest resolves a search pick to a course.
type SelectSearchResultRequest struct {
	CourseID int64 `json:"course_id" validate:"required,min=1"`
}

// CourseTimesResponse carries the tee-time detail for one course.
type CourseTimesResponse struct {
	CourseID int64  `json:"course_id"`
	Date     string `json:"date"`
	Slots    []Slot `json:"slots"`
}

// ToggleResponse reports the expanded row after a toggle, 0 for none.
type ToggleResponse struct {
	ExpandedCourseID int64 `json:"expanded_course_id"`
}
