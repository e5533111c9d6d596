package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/fairway/fairway-api/internal/pkg/erp"
)

// ERPClient is the slice of the ERP booking client the catalog needs.
type ERPClient interface {
	SearchCourses(ctx context.Context, date string) ([]erp.CourseDTO, error)
	CourseTimes(ctx context.Context, date string, courseID int64) ([]erp.TeeTimeDTO, error)
}

// Service composes ERP fetches with the preference store. It holds no
// catalog state itself; per-session state lives in Engine.
type Service struct {
	client ERPClient
	prefs  PreferenceRepository
}

// NewService creates a catalog service.
func NewService(client ERPClient, prefs PreferenceRepository) *Service {
	return &Service{client: client, prefs: prefs}
}

// FetchCourses fetches and maps the course list for a date (YYYYMMDD),
// pre-sorted by minimum sale fee ascending as the list view expects.
func (s *Service) FetchCourses(ctx context.Context, date string) ([]Course, error) {
	dtos, err := s.client.SearchCourses(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	courses := make([]Course, len(dtos))
	for i, dto := range dtos {
		courses[i] = MapCourse(dto)
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].MinSaleFee < courses[j].MinSaleFee
	})
	return courses, nil
}

// FetchCourseTimes fetches and maps the tee-time list for one course.
func (s *Service) FetchCourseTimes(ctx context.Context, date string, courseID int64) ([]Slot, error) {
	dtos, err := s.client.CourseTimes(ctx, date, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course times: %w", err)
	}

	slots := make([]Slot, len(dtos))
	for i, dto := range dtos {
		slots[i] = MapSlot(dto)
	}
	return slots, nil
}

// PersistRegions stores the member's region-filter subset.
func (s *Service) PersistRegions(ctx context.Context, memberKey int64, regions []string) error {
	if s.prefs == nil {
		return nil
	}
	return s.prefs.SaveRegions(ctx, memberKey, regions)
}

// LoadRegions restores the member's region-filter subset.
func (s *Service) LoadRegions(ctx context.Context, memberKey int64) ([]string, error) {
	if s.prefs == nil {
		return nil, nil
	}
	return s.prefs.LoadRegions(ctx, memberKey)
}
