package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fairway/fairway-api/internal/middleware"
	"github.com/fairway/fairway-api/internal/pkg/dateutil"
	"github.com/fairway/fairway-api/internal/pkg/errorhandler"
	"github.com/fairway/fairway-api/internal/pkg/response"
	"github.com/fairway/fairway-api/internal/pkg/validator"
)

// EngineProvider hands out the per-session catalog engine for a member.
type EngineProvider interface {
	EngineFor(memberKey int64) *Engine
}

// Handler handles catalog HTTP requests.
type Handler struct {
	service *Service
	engines EngineProvider
}

// NewHandler creates a catalog handler.
func NewHandler(service *Service, engines EngineProvider) *Handler {
	return &Handler{service: service, engines: engines}
}

// ListCourses handles GET /api/v1/courses?date=YYYYMMDD
// Fetches the raw course list for the date, feeds it into the session
// engine and returns the first visible page.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.engines.EngineFor(memberKey).SelectedDate()
	}
	if err := validator.ValidateVar(date, "ymd"); err != nil {
		response.BadRequest(w, "Invalid date. Must be YYYYMMDD")
		return
	}

	eng := h.engines.EngineFor(memberKey)
	eng.SetSelectedDate(date)

	// Generation token: if another fetch for this date wins the race, this
	// response is discarded instead of overwriting fresher state.
	generation := eng.BeginFetch(date)

	courses, err := h.service.FetchCourses(r.Context(), date)
	if err != nil {
		errorhandler.HandleUpstream(r.Context(), w, err)
		return
	}

	if !eng.SetRawCourses(date, generation, courses) {
		log.Debug().
			Int64("member_key", memberKey).
			Str("date", date).
			Msg("Discarded stale course fetch")
	}

	response.OK(w, eng.VisiblePage())
}

// GetPage handles GET /api/v1/courses/page
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	response.OK(w, eng.VisiblePage())
}

// LoadMore handles POST /api/v1/courses/more
// No-op while a load is already pending or no pages remain.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	started := eng.LoadMore()
	page := eng.VisiblePage()
	response.Accepted(w, LoadMoreResponse{Started: started, LoadingMore: page.LoadingMore})
}

// ApplyFilters handles PUT /api/v1/courses/filters
// The caller supplies the complete five-set structure.
func (h *Handler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	var req ApplyFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	eng := h.engines.EngineFor(memberKey)
	eng.ApplyFilters(req.Filters())

	// Only the region subset persists; a failure here must not fail the
	// filter application itself.
	if err := h.service.PersistRegions(r.Context(), memberKey, req.Regions); err != nil {
		log.Warn().Err(err).Int64("member_key", memberKey).Msg("Failed to persist region filters")
	}

	response.OK(w, eng.VisiblePage())
}

// ResetFilters handles DELETE /api/v1/courses/filters
func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	eng := h.engines.EngineFor(memberKey)
	eng.ResetFilters()

	if err := h.service.PersistRegions(r.Context(), memberKey, nil); err != nil {
		log.Warn().Err(err).Int64("member_key", memberKey).Msg("Failed to clear persisted region filters")
	}

	response.OK(w, eng.VisiblePage())
}

// FilterOptions handles GET /api/v1/courses/filters/options
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	response.OK(w, FilterOptions)
}

// ApplySort handles PUT /api/v1/courses/sort
func (h *Handler) ApplySort(w http.ResponseWriter, r *http.Request) {
	var req ApplySortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	eng.ApplySort(SortOption(req.SortOption))
	response.OK(w, eng.VisiblePage())
}

// ResetSort handles DELETE /api/v1/courses/sort
func (h *Handler) ResetSort(w http.ResponseWriter, r *http.Request) {
	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	eng.ResetSort()
	response.OK(w, eng.VisiblePage())
}

// Search handles GET /api/v1/courses/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))

	query := r.URL.Query().Get("q")
	results := eng.Search(query)

	response.OK(w, SearchResponse{
		Query:          query,
		Results:        results,
		RecentSearches: eng.RecentSearches(),
	})
}

// SelectSearchResult handles POST /api/v1/courses/search/select
func (h *Handler) SelectSearchResult(w http.ResponseWriter, r *http.Request) {
	var req SelectSearchResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	course, ok := eng.SelectSearchResult(req.CourseID)
	if !ok {
		response.NotFound(w, "Course not found")
		return
	}
	response.OK(w, course)
}

// RemoveRecentSearch handles DELETE /api/v1/courses/search/recent
// ?index=N removes one entry; without index the whole list clears.
func (h *Handler) RemoveRecentSearch(w http.ResponseWriter, r *http.Request) {
	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))

	indexParam := r.URL.Query().Get("index")
	if indexParam == "" {
		eng.ClearRecentSearches()
	} else {
		index, err := strconv.Atoi(indexParam)
		if err != nil || index < 0 {
			response.BadRequest(w, "Invalid index")
			return
		}
		eng.RemoveRecentSearch(index)
	}

	response.OK(w, map[string][]string{"recent_searches": eng.RecentSearches()})
}

// CourseTimes handles GET /api/v1/courses/{id}/times?date=YYYYMMDD
func (h *Handler) CourseTimes(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || courseID <= 0 {
		response.BadRequest(w, "Invalid course id")
		return
	}

	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	date := r.URL.Query().Get("date")
	if date == "" {
		date = eng.SelectedDate()
	}
	if err := validator.ValidateVar(date, "ymd"); err != nil {
		response.BadRequest(w, "Invalid date. Must be YYYYMMDD")
		return
	}

	slots, err := h.service.FetchCourseTimes(r.Context(), date, courseID)
	if err != nil {
		errorhandler.HandleUpstream(r.Context(), w, err)
		return
	}

	response.OK(w, CourseTimesResponse{CourseID: courseID, Date: date, Slots: slots})
}

// ToggleCourse handles POST /api/v1/courses/{id}/toggle
func (h *Handler) ToggleCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || courseID <= 0 {
		response.BadRequest(w, "Invalid course id")
		return
	}

	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))
	expanded := eng.ToggleCourse(courseID)
	response.OK(w, ToggleResponse{ExpandedCourseID: expanded})
}

// Months handles GET /api/v1/courses/months
func (h *Handler) Months(w http.ResponseWriter, r *http.Request) {
	eng := h.engines.EngineFor(middleware.GetMemberKey(r.Context()))

	months := eng.AvailableMonths()
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = dateutil.FormatYmd(m)
	}
	response.OK(w, map[string]interface{}{
		"selected_date": eng.SelectedDate(),
		"months":        out,
	})
}

