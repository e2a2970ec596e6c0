package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

// Filter narrows list queries. Empty fields are not sent.
type Filter struct {
	Student   string
	ClassRoom string
	Module    string
	Lesson    string
}

// Values encodes the filter as query parameters.
func (f Filter) Values() url.Values {
	return domain.CleanQuery(url.Values{
		"student":    {f.Student},
		"class_room": {f.ClassRoom},
		"module":     {f.Module},
		"lesson":     {f.Lesson},
	})
}

// CatalogService reads the STEAM backend resources.
type CatalogService struct {
	api     API
	gallery GalleryOptions
}

// NewCatalogService creates a CatalogService over api.
func NewCatalogService(api API, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		api:     api,
		gallery: DefaultGalleryOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithGalleryOptions sets how gallery lesson names are resolved.
func WithGalleryOptions(o GalleryOptions) CatalogOption {
	return func(s *CatalogService) {
		s.gallery = o.withDefaults()
	}
}

// list fetches path and returns its data array, empty when absent.
func list[T any](ctx context.Context, api API, path string, query url.Values) ([]T, error) {
	var env domain.Envelope[[]T]
	if err := api.Request(ctx, path, domain.RequestOptions{Query: query}, &env); err != nil {
		return nil, err
	}
	return domain.List(env), nil
}

// ============================================================================
// Courses
// ============================================================================

// Courses returns the course catalog.
func (s *CatalogService) Courses(ctx context.Context) ([]domain.Course, error) {
	return list[domain.Course](ctx, s.api, PathCourses, nil)
}

// Course returns the course with the given id.
func (s *CatalogService) Course(ctx context.Context, id string) (*domain.Course, error) {
	courses, err := s.Courses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ID.String() == id {
			return &courses[i], nil
		}
	}
	return nil, domain.ErrNotFound.WithDetails("course " + id)
}

// CourseModules returns the modules of a student's or class's course.
func (s *CatalogService) CourseModules(ctx context.Context, f Filter) ([]domain.CourseModule, error) {
	return list[domain.CourseModule](ctx, s.api, PathCourseModules, Filter{Student: f.Student, ClassRoom: f.ClassRoom}.Values())
}

// ============================================================================
// Students
// ============================================================================

// StudentRegistrations returns the registrations of the current app user.
func (s *CatalogService) StudentRegistrations(ctx context.Context) ([]domain.StudentRegistration, error) {
	return list[domain.StudentRegistration](ctx, s.api, PathStudentRegistrations, nil)
}

// Students returns the students of the current app user's registrations.
func (s *CatalogService) Students(ctx context.Context) ([]domain.Student, error) {
	regs, err := s.StudentRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	students := make([]domain.Student, 0, len(regs))
	for _, r := range regs {
		if r.Student != nil {
			students = append(students, *r.Student)
		}
	}
	return students, nil
}

// Profile returns the app user of the first registration that has one.
func (s *CatalogService) Profile(ctx context.Context) (*domain.AppUser, error) {
	regs, err := s.StudentRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range regs {
		if r.AppUser != nil {
			return r.AppUser, nil
		}
	}
	return nil, domain.ErrNotFound.WithDetails("no registration carries a user profile")
}

// CreateStudentRegistration validates in and registers a new student.
// The returned registration is nil when the backend echoes nothing back.
func (s *CatalogService) CreateStudentRegistration(ctx context.Context, in domain.NewRegistration) (*domain.StudentRegistration, error) {
	if err := ValidateStruct(in); err != nil {
		return nil, err
	}

	var env domain.Envelope[*domain.StudentRegistration]
	opts := domain.RequestOptions{Method: http.MethodPost, Body: in}
	if err := s.api.Request(ctx, PathStudentRegistrations, opts, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ============================================================================
// Classes and lessons
// ============================================================================

// ClassDetail is a class together with its course modules.
type ClassDetail struct {
	Class   domain.ClassRoom      `json:"class"`
	Modules []domain.CourseModule `json:"modules"`
}

// Classes returns classes, optionally only those of one student.
func (s *CatalogService) Classes(ctx context.Context, f Filter) ([]domain.ClassRoom, error) {
	return list[domain.ClassRoom](ctx, s.api, PathClasses, Filter{Student: f.Student}.Values())
}

// ClassRoom returns the class with the given id and its modules.
func (s *CatalogService) ClassRoom(ctx context.Context, id string, f Filter) (*ClassDetail, error) {
	classes, err := s.Classes(ctx, f)
	if err != nil {
		return nil, err
	}

	for _, c := range classes {
		if c.ID.String() != id {
			continue
		}
		modules, err := s.CourseModules(ctx, Filter{Student: f.Student, ClassRoom: id})
		if err != nil {
			return nil, err
		}
		return &ClassDetail{Class: c, Modules: modules}, nil
	}
	return nil, domain.ErrNotFound.WithDetails("class " + id)
}

// Lessons returns lessons filtered by student, class and module.
func (s *CatalogService) Lessons(ctx context.Context, f Filter) ([]domain.Lesson, error) {
	q := Filter{Student: f.Student, ClassRoom: f.ClassRoom, Module: f.Module}.Values()
	return list[domain.Lesson](ctx, s.api, PathLessons, q)
}

// Lesson returns a single lesson by id.
func (s *CatalogService) Lesson(ctx context.Context, id string) (*domain.Lesson, error) {
	lessons, err := list[domain.Lesson](ctx, s.api, PathLessons, url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, domain.ErrNotFound.WithDetails("lesson " + id)
	}
	return &lessons[0], nil
}

// LessonGalleries returns the photo galleries matching f.
func (s *CatalogService) LessonGalleries(ctx context.Context, f Filter) ([]domain.LessonGallery, error) {
	return list[domain.LessonGallery](ctx, s.api, PathLessonGalleries, f.Values())
}

// LessonEvaluations returns the evaluations matching f.
func (s *CatalogService) LessonEvaluations(ctx context.Context, f Filter) ([]domain.LessonEvaluation, error) {
	return list[domain.LessonEvaluation](ctx, s.api, PathLessonEvaluations, f.Values())
}

// Attendances returns attendance records, optionally filtered.
func (s *CatalogService) Attendances(ctx context.Context, f Filter) ([]domain.Attendance, error) {
	return list[domain.Attendance](ctx, s.api, PathAttendances, Filter{Student: f.Student, ClassRoom: f.ClassRoom}.Values())
}

// TimeTables returns the scheduled slots matching f.
func (s *CatalogService) TimeTables(ctx context.Context, f Filter) ([]domain.TimeTable, error) {
	return list[domain.TimeTable](ctx, s.api, PathTimeTables, Filter{Student: f.Student, ClassRoom: f.ClassRoom}.Values())
}

// ============================================================================
// Center information
// ============================================================================

// Facilities returns the center's facilities.
func (s *CatalogService) Facilities(ctx context.Context) ([]domain.Facility, error) {
	return list[domain.Facility](ctx, s.api, PathFacilities, nil)
}

// News returns the news feed.
func (s *CatalogService) News(ctx context.Context) ([]domain.News, error) {
	return list[domain.News](ctx, s.api, PathNews, nil)
}

// NewsItem returns the article with the given id.
func (s *CatalogService) NewsItem(ctx context.Context, id string) (*domain.News, error) {
	items, err := s.News(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID.String() == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrNotFound.WithDetails("news " + id)
}
