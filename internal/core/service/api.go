package service

import (
	"context"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
)

// API performs one backend call and decodes a successful body into target.
type API interface {
	Request(ctx context.Context, path string, opts domain.RequestOptions, target any) error
}

// TokenStore is the single-slot bearer token cache.
type TokenStore interface {
	Set(token string)
	Clear()
	Get() (string, bool)
}

// TokenSource produces a bearer token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Resource paths, relative to the API prefix.
const (
	PathSession              = "/auth/session"
	PathCourses              = "/courses"
	PathStudentRegistrations = "/student-registrations"
	PathClasses              = "/classes"
	PathCourseModules        = "/course-modules"
	PathLessons              = "/lessons"
	PathLessonGalleries      = "/lesson-galleries"
	PathLessonEvaluations    = "/lesson-evaluations"
	PathAttendances          = "/attendances"
	PathTimeTables           = "/time-tables"
	PathFacilities           = "/facilities"
	PathNews                 = "/news"
)
