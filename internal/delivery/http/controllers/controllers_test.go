package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"
	"EduPortal/internal/policy"
	"EduPortal/internal/service/auth"
	"EduPortal/internal/service/catalog"
	"EduPortal/internal/service/glossary"
	"EduPortal/internal/service/serialize"
	"EduPortal/internal/service/users"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "f00f00f00f00f00f00f00f00f00f00f00f00f00f"

type fakeAuth struct {
	user *models.User
}

func (f *fakeAuth) Register(_ context.Context, in auth.RegisterInput) (*models.User, string, error) {
	if in.Username == "taken" {
		return nil, "", app_errors.NewValidationError("username", app_errors.ErrUsernameTaken.Error())
	}
	u := &models.User{ID: uuid.New(), Username: in.Username, Email: in.Email}
	return u, testToken, nil
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*models.User, string, error) {
	if f.user == nil || username != f.user.Username || password != "correct-horse" {
		return nil, "", app_errors.ErrInvalidCredentials
	}
	return f.user, testToken, nil
}

func (f *fakeAuth) Logout(_ context.Context, userID uuid.UUID) error {
	if f.user == nil || f.user.ID != userID {
		return app_errors.ErrTokenNotFound
	}
	return nil
}

func (f *fakeAuth) UserByToken(_ context.Context, key string) (*models.User, error) {
	if f.user != nil && key == testToken {
		return f.user, nil
	}
	return nil, app_errors.ErrTokenNotFound
}

type fakeCatalog struct {
	courses    []models.CourseSummary
	detail     *models.CourseDetail
	categories []models.Category
	lastFilter catalog.Filter
}

func (f *fakeCatalog) ListCourses(_ context.Context, filter catalog.Filter, limit, offset int) ([]models.CourseSummary, int, error) {
	f.lastFilter = filter
	total := len(f.courses)
	if offset >= total {
		return nil, total, nil
	}
	page := f.courses[offset:]
	if len(page) > limit {
		page = page[:limit]
	}
	return page, total, nil
}

func (f *fakeCatalog) CourseBySlug(_ context.Context, slug string) (*models.CourseDetail, error) {
	if f.detail != nil && f.detail.Slug == slug {
		return f.detail, nil
	}
	return nil, app_errors.ErrCourseNotFound
}

func (f *fakeCatalog) Categories(_ context.Context) ([]models.Category, error) {
	return f.categories, nil
}

type fakeGlossary struct {
	terms []models.Term
	lastQ string
}

func (f *fakeGlossary) ListTerms(_ context.Context) ([]models.Term, error) { return f.terms, nil }

func (f *fakeGlossary) SearchTerms(_ context.Context, q string) ([]models.Term, error) {
	f.lastQ = q
	return f.terms, nil
}

func (f *fakeGlossary) TermByID(_ context.Context, id uuid.UUID) (*models.Term, error) {
	for _, t := range f.terms {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, app_errors.ErrTermNotFound
}

func (f *fakeGlossary) CreateTerm(_ context.Context, in glossary.TermInput) (*models.Term, error) {
	t := models.Term{ID: uuid.New(), Title: in.Title, Description: in.Description, IsActive: true}
	f.terms = append(f.terms, t)
	return &t, nil
}

func (f *fakeGlossary) UpdateTerm(_ context.Context, id uuid.UUID, in glossary.TermInput) (*models.Term, error) {
	return nil, app_errors.ErrTermNotFound
}

func (f *fakeGlossary) DeleteTerm(_ context.Context, id uuid.UUID) error {
	return app_errors.ErrTermNotFound
}

type fakeEnrollments struct {
	enrolled map[string]bool // slug, for the single test user
}

func (f *fakeEnrollments) Enroll(_ context.Context, userID uuid.UUID, courseSlug string) (*models.Enrollment, error) {
	if courseSlug == "missing" {
		return nil, app_errors.ErrCourseNotFound
	}
	if f.enrolled[courseSlug] {
		return nil, app_errors.ErrAlreadyEnrolled
	}
	if f.enrolled == nil {
		f.enrolled = map[string]bool{}
	}
	f.enrolled[courseSlug] = true
	return &models.Enrollment{ID: uuid.New(), UserID: userID}, nil
}

func (f *fakeEnrollments) EnrollmentsByUser(_ context.Context, userID uuid.UUID) ([]models.EnrollmentView, error) {
	return []models.EnrollmentView{}, nil
}

type fakeUsers struct {
	profiles map[uuid.UUID]models.UserProfile
}

func (f *fakeUsers) ListUsers(_ context.Context, limit, offset int) ([]models.UserProfile, int, error) {
	out := []models.UserProfile{}
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeUsers) UserByID(_ context.Context, id uuid.UUID) (*models.UserProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return &p, nil
	}
	return nil, app_errors.ErrUserNotFound
}

func (f *fakeUsers) UpdateUser(_ context.Context, caller policy.Caller, id uuid.UUID, in users.UpdateInput) (*models.UserProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	if caller.ID != id {
		return nil, app_errors.ErrForbidden
	}
	p.Email = in.Email
	f.profiles[id] = p
	return &p, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, caller policy.Caller, id uuid.UUID) error {
	if _, ok := f.profiles[id]; !ok {
		return app_errors.ErrUserNotFound
	}
	if caller.ID != id {
		return app_errors.ErrForbidden
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeUsers) UploadAvatar(_ context.Context, caller policy.Caller, id uuid.UUID, filename string, _ io.Reader, _ int64, contentType string) (*models.UserProfile, error) {
	if caller.ID != id {
		return nil, app_errors.ErrForbidden
	}
	p := f.profiles[id]
	return &p, nil
}

type fakeMedia struct{}

func (fakeMedia) URL(_ context.Context, key string) (string, error) {
	return "https://media.local/" + key, nil
}

type testEnv struct {
	router      *gin.Engine
	auth        *fakeAuth
	catalog     *fakeCatalog
	glossary    *fakeGlossary
	enrollments *fakeEnrollments
	users       *fakeUsers
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	log := logger.New("local")
	serializer := serialize.New(log, fakeMedia{})

	userID := uuid.New()
	env := &testEnv{
		auth:        &fakeAuth{user: &models.User{ID: userID, Username: "aziza", Email: "aziza@example.com"}},
		catalog:     &fakeCatalog{},
		glossary:    &fakeGlossary{},
		enrollments: &fakeEnrollments{enrolled: map[string]bool{}},
		users:       &fakeUsers{profiles: map[uuid.UUID]models.UserProfile{}},
	}
	env.users.profiles[userID] = models.UserProfile{ID: userID, Username: "aziza", Email: "aziza@example.com"}

	authController := NewAuthHandler(log, env.auth, serializer)
	termsController := NewTermsHandler(log, env.glossary)
	coursesController := NewCoursesHandler(log, env.catalog, 20)
	usersController := NewUsersHandler(log, env.users, 20)
	enrollmentsController := NewEnrollmentsHandler(log, env.enrollments)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register/", authController.Register)
	api.POST("/auth/login/", authController.Login)
	api.POST("/auth/logout/", authController.OptionalAuthMiddleware, authController.Logout)
	api.GET("/terms/", termsController.List)
	api.GET("/terms/search/", termsController.Search)
	api.POST("/terms/", authController.AuthMiddleware, termsController.Create)
	api.GET("/courses/", coursesController.List)
	api.GET("/courses/:slug/", coursesController.Retrieve)
	api.POST("/courses/:slug/enroll/", authController.AuthMiddleware, enrollmentsController.Enroll)
	api.GET("/users/me/", authController.AuthMiddleware, usersController.Me)
	api.PUT("/users/:id/", authController.AuthMiddleware, usersController.Update)

	env.router = r
	return env
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("returns user, token and message", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/auth/register/", gin.H{
			"username":  "bekzod",
			"email":     "bekzod@example.com",
			"password":  "orange-battery",
			"password2": "orange-battery",
		}, "")

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, testToken, body["token"])
		assert.Equal(t, "registration success", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "bekzod", user["username"])
		assert.NotContains(t, user, "password")
	})

	t.Run("missing fields answer field errors", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/auth/register/", gin.H{"username": "bekzod"}, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decode(t, w)["errors"].(map[string]any)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "password")
		assert.Contains(t, errs, "password2")
	})

	t.Run("taken username answers a field error", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/auth/register/", gin.H{
			"username":  "taken",
			"email":     "taken@example.com",
			"password":  "orange-battery",
			"password2": "orange-battery",
		}, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		errs := decode(t, w)["errors"].(map[string]any)
		assert.Contains(t, errs, "username")
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success returns the token", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/auth/login/", gin.H{
			"username": "aziza",
			"password": "correct-horse",
		}, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testToken, decode(t, w)["token"])
	})

	t.Run("wrong password and unknown user answer the same 401", func(t *testing.T) {
		env := newTestEnv()
		wrongPassword := env.do(http.MethodPost, "/api/auth/login/", gin.H{
			"username": "aziza", "password": "nope",
		}, "")
		unknownUser := env.do(http.MethodPost, "/api/auth/login/", gin.H{
			"username": "ghost", "password": "nope",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("with a valid token", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/auth/logout/", nil, testToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("without a token it is a generic 400", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/auth/logout/", nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "unable to log out", decode(t, w)["error"])
	})
}

func TestCoursesEndpoint(t *testing.T) {
	t.Run("list answers a paginated envelope and forwards filters", func(t *testing.T) {
		env := newTestEnv()
		env.catalog.courses = []models.CourseSummary{{ID: uuid.New(), Title: "Go Basics", Slug: "go-basics"}}

		w := env.do(http.MethodGet, "/api/courses/?category=prog&search=go", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])
		results := body["results"].([]any)
		require.Len(t, results, 1)
		assert.Nil(t, body["next"])
		assert.Nil(t, body["previous"])
		assert.Equal(t, "prog", env.catalog.lastFilter.CategorySlug)
		assert.Equal(t, "go", env.catalog.lastFilter.Search)
	})

	t.Run("long lists carry next and previous links", func(t *testing.T) {
		env := newTestEnv()
		for i := 0; i < 21; i++ {
			env.catalog.courses = append(env.catalog.courses, models.CourseSummary{ID: uuid.New(), Title: "Course", Slug: "course"})
		}

		first := decode(t, env.do(http.MethodGet, "/api/courses/?search=go", nil, ""))
		assert.Equal(t, float64(21), first["count"])
		assert.Equal(t, "/api/courses/?page=2&search=go", first["next"])
		assert.Nil(t, first["previous"])

		second := decode(t, env.do(http.MethodGet, "/api/courses/?page=2&search=go", nil, ""))
		require.Len(t, second["results"].([]any), 1)
		assert.Nil(t, second["next"])
		assert.Equal(t, "/api/courses/?search=go", second["previous"])
	})

	t.Run("absurd page numbers stay a 200 with an empty page", func(t *testing.T) {
		env := newTestEnv()
		env.catalog.courses = []models.CourseSummary{{ID: uuid.New(), Title: "Go Basics", Slug: "go-basics"}}

		w := env.do(http.MethodGet, "/api/courses/?page=9223372036854775807", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])
		assert.Empty(t, body["results"])
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodGet, "/api/courses/nope/", nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not found", decode(t, w)["error"])
	})
}

func TestEnrollEndpoint(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/courses/go-basics/enroll/", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("first enrollment succeeds, second is a 400", func(t *testing.T) {
		env := newTestEnv()

		first := env.do(http.MethodPost, "/api/courses/go-basics/enroll/", nil, testToken)
		require.Equal(t, http.StatusCreated, first.Code)

		second := env.do(http.MethodPost, "/api/courses/go-basics/enroll/", nil, testToken)
		require.Equal(t, http.StatusBadRequest, second.Code)
		errs := decode(t, second)["errors"].(map[string]any)
		assert.Contains(t, errs, "course")
	})

	t.Run("hidden course is 404, not 403", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPost, "/api/courses/missing/enroll/", nil, testToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTermsEndpoint(t *testing.T) {
	t.Run("search forwards the query", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodGet, "/api/terms/search/?q=gorout", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gorout", env.glossary.lastQ)
	})

	t.Run("create requires a token", func(t *testing.T) {
		env := newTestEnv()
		payload := gin.H{"title": "API", "description": "Application programming interface."}

		anonymous := env.do(http.MethodPost, "/api/terms/", payload, "")
		assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

		authed := env.do(http.MethodPost, "/api/terms/", payload, testToken)
		assert.Equal(t, http.StatusCreated, authed.Code)
	})
}

func TestUsersEndpoint(t *testing.T) {
	t.Run("me returns the caller's profile", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodGet, "/api/users/me/", nil, testToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "aziza", decode(t, w)["username"])
	})

	t.Run("updating someone else is forbidden", func(t *testing.T) {
		env := newTestEnv()
		otherID := uuid.New()
		env.users.profiles[otherID] = models.UserProfile{ID: otherID, Username: "bekzod"}

		w := env.do(http.MethodPut, "/api/users/"+otherID.String()+"/",
			gin.H{"email": "new@example.com"}, testToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner updates own record", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(http.MethodPut, "/api/users/"+env.auth.user.ID.String()+"/",
			gin.H{"email": "new@example.com"}, testToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "new@example.com", decode(t, w)["email"])
	})
}
