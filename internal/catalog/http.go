package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"CourseCatalog/pkg/kit"
)

const (
	maxAddBody = 1 << 20

	addLimitPerMin = 30
)

type Server struct {
	Service *Service
	Log     *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Service.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	addLimiter := kit.NewIPRateLimiter(addLimitPerMin, 60)

	r.Get("/courses", s.list)
	r.With(addLimiter.Middleware).Post("/courses", s.add)
	r.Get("/courses/{code}", s.get)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Service.ListCourses(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "list courses failed")
		return
	}

	if s.Log != nil {
		s.Log.Info("catalog listed", zap.Int("course.count", len(courses)))
	}
	kit.WriteJSON(w, http.StatusOK, courses)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	c, ok, err := s.Service.GetCourse(r.Context(), code)
	if err != nil {
		s.writeStoreError(w, r, err, "get course failed")
		return
	}
	if !ok {
		if s.Log != nil {
			s.Log.Error("no course found", zap.String("course.code", code))
		}
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"code": code})
		return
	}

	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeCourseFields(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad request body", map[string]any{"cause": err.Error()})
		return
	}

	c, err := s.Service.AddCourse(r.Context(), fields)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			kit.WriteError(w, r, http.StatusBadRequest, "missing required fields",
				map[string]any{"missing_fields": ve.MissingFields})
		case errors.Is(err, ErrDuplicateCode):
			kit.WriteError(w, r, http.StatusConflict, "course code already exists",
				map[string]any{"code": fields["code"]})
		default:
			s.writeStoreError(w, r, err, "add course failed")
		}
		return
	}

	kit.WriteJSON(w, http.StatusCreated, c)
}

var courseFieldNames = []string{
	"code", "name", "instructor", "semester", "schedule",
	"classroom", "prerequisites", "grading", "description",
}

type addReq struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Instructor    string `json:"instructor"`
	Semester      string `json:"semester"`
	Schedule      string `json:"schedule"`
	Classroom     string `json:"classroom"`
	Prerequisites string `json:"prerequisites"`
	Grading       string `json:"grading"`
	Description   string `json:"description"`
}

// decodeCourseFields accepts either a JSON object of strings or an HTML
// form post, and flattens both into the field map AddCourse consumes.
func decodeCourseFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAddBody)
	defer func() { _ = r.Body.Close() }()

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return decodeJSONFields(r.Body)
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(courseFieldNames))
	for _, name := range courseFieldNames {
		fields[name] = r.PostFormValue(name)
	}
	return fields, nil
}

func decodeJSONFields(body io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req addReq
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("extra data after json object")
	}

	return map[string]string{
		"code":          req.Code,
		"name":          req.Name,
		"instructor":    req.Instructor,
		"semester":      req.Semester,
		"schedule":      req.Schedule,
		"classroom":     req.Classroom,
		"prerequisites": req.Prerequisites,
		"grading":       req.Grading,
		"description":   req.Description,
	}, nil
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
