package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ValidationError lists the required fields missing from an add request.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.MissingFields, ", ")
}

// Service is the use-case layer over a Store: list, lookup by code,
// validate-and-add. It reads the full catalog on every call; there is no
// cache to invalidate.
type Service struct {
	Store Store
	Log   *zap.Logger
}

func (s *Service) ListCourses(ctx context.Context) ([]Course, error) {
	return s.Store.LoadAll(ctx)
}

// GetCourse does a linear scan for the first course whose code matches
// exactly (case-sensitive). ok=false means no such course.
func (s *Service) GetCourse(ctx context.Context, code string) (Course, bool, error) {
	courses, err := s.Store.LoadAll(ctx)
	if err != nil {
		return Course{}, false, err
	}

	for _, c := range courses {
		if c.Code == code {
			return c, true, nil
		}
	}
	return Course{}, false, nil
}

// AddCourse builds a course from the submitted fields and appends it.
// code, name and instructor are required and caller-supplied; the store
// is not touched when validation fails. Uniqueness of code is not checked
// here; backends that enforce it return ErrDuplicateCode.
func (s *Service) AddCourse(ctx context.Context, fields map[string]string) (Course, error) {
	c := Course{
		Code:          strings.TrimSpace(fields["code"]),
		Name:          strings.TrimSpace(fields["name"]),
		Instructor:    strings.TrimSpace(fields["instructor"]),
		Semester:      fields["semester"],
		Schedule:      fields["schedule"],
		Classroom:     fields["classroom"],
		Prerequisites: fields["prerequisites"],
		Grading:       fields["grading"],
		Description:   fields["description"],
	}

	var missing []string
	if c.Code == "" {
		missing = append(missing, "code")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Instructor == "" {
		missing = append(missing, "instructor")
	}
	if len(missing) > 0 {
		if s.Log != nil {
			s.Log.Error("missing required fields", zap.Strings("missing_fields", missing))
		}
		return Course{}, &ValidationError{MissingFields: missing}
	}

	if err := s.Store.Append(ctx, c); err != nil {
		return Course{}, err
	}

	if s.Log != nil {
		s.Log.Info("course added",
			zap.String("course.code", c.Code),
			zap.String("course.name", c.Name),
			zap.String("course.instructor", c.Instructor),
		)
	}
	return c, nil
}
