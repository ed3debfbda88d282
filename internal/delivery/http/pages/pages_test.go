package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"EduPortal/internal/app_errors"
	"EduPortal/internal/models"
	"EduPortal/internal/service/auth"
	"EduPortal/internal/service/catalog"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	user     *models.User
	sessions *auth.SessionManager
}

func (f *fakeAuth) Register(_ context.Context, in auth.RegisterInput) (*models.User, string, error) {
	u := &models.User{ID: uuid.New(), Username: in.Username, Email: in.Email}
	f.user = u
	return u, "token", nil
}

func (f *fakeAuth) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	if f.user != nil && username == f.user.Username && password == "correct-horse" {
		return f.user, nil
	}
	return nil, app_errors.ErrInvalidCredentials
}

func (f *fakeAuth) User(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, app_errors.ErrUserNotFound
}

func (f *fakeAuth) IssueSession(userID uuid.UUID) (string, error) {
	return f.sessions.Issue(userID)
}

func (f *fakeAuth) ParseSession(raw string) (uuid.UUID, error) {
	return f.sessions.Parse(raw)
}

type fakeCatalog struct {
	courses []models.CourseSummary
	detail  *models.CourseDetail
}

func (f *fakeCatalog) ListCourses(_ context.Context, _ catalog.Filter, limit, offset int) ([]models.CourseSummary, int, error) {
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
	return []models.Category{}, nil
}

type fakeGlossary struct{ terms []models.Term }

func (f *fakeGlossary) ListTerms(_ context.Context) ([]models.Term, error) { return f.terms, nil }

type fakeBlog struct{ posts []models.PostView }

func (f *fakeBlog) ListPosts(_ context.Context, limit, _ int) ([]models.PostView, int, error) {
	if len(f.posts) > limit {
		return f.posts[:limit], len(f.posts), nil
	}
	return f.posts, len(f.posts), nil
}

type fakeEnrollments struct{ views []models.EnrollmentView }

func (f *fakeEnrollments) EnrollmentsByUser(_ context.Context, _ uuid.UUID) ([]models.EnrollmentView, error) {
	return f.views, nil
}

type testEnv struct {
	router  *gin.Engine
	auth    *fakeAuth
	catalog *fakeCatalog
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	log := logger.New("local")

	env := &testEnv{
		auth:    &fakeAuth{sessions: auth.NewSessionManager("test-secret", time.Hour)},
		catalog: &fakeCatalog{},
	}

	h := NewPagesHandler(log, env.auth, env.catalog, &fakeGlossary{}, &fakeBlog{}, &fakeEnrollments{}, time.Hour)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	site := r.Group("/", h.SessionMiddleware)
	site.GET("/", h.Index)
	site.GET("/glossary/", h.Glossary)
	site.GET("/courses/", h.Courses)
	site.GET("/course/:slug/", h.CourseDetail)
	site.GET("/contact/", h.ContactForm)
	site.POST("/contact/", h.Contact)
	site.GET("/login/", h.LoginForm)
	site.POST("/login/", h.Login)
	site.GET("/logout/", h.Logout)
	site.GET("/profile/", h.RequireLogin, h.Profile)

	env.router = r
	return env
}

func (env *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestIndexPage(t *testing.T) {
	env := newTestEnv()
	env.catalog.courses = []models.CourseSummary{{Title: "Go Basics", Slug: "go-basics"}}

	w := env.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go Basics")
	assert.Contains(t, w.Body.String(), "/course/go-basics/")
}

func TestCoursesPagePagination(t *testing.T) {
	env := newTestEnv()
	for i := 1; i <= coursePageSize+1; i++ {
		env.catalog.courses = append(env.catalog.courses, models.CourseSummary{
			Title: fmt.Sprintf("Course %02d", i),
			Slug:  fmt.Sprintf("course-%02d", i),
		})
	}

	t.Run("first page shows a next link", func(t *testing.T) {
		w := env.get("/courses/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Course 01")
		assert.NotContains(t, w.Body.String(), "Course 13")
		assert.Contains(t, w.Body.String(), "/courses/?page=2")
	})

	t.Run("second page reaches later courses", func(t *testing.T) {
		w := env.get("/courses/?page=2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Course 13")
		assert.NotContains(t, w.Body.String(), "Course 01")
		assert.Contains(t, w.Body.String(), "/courses/?page=1")
	})

	t.Run("absurd page numbers do not break rendering", func(t *testing.T) {
		w := env.get("/courses/?page=9223372036854775807")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No courses match.")
	})
}

func TestCourseDetailPage(t *testing.T) {
	env := newTestEnv()
	env.catalog.detail = &models.CourseDetail{
		Title:   "Go Basics",
		Slug:    "go-basics",
		Lessons: []models.Lesson{{Title: "Hello, world"}},
	}

	t.Run("published course renders with lessons", func(t *testing.T) {
		w := env.get("/course/go-basics/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hello, world")
	})

	t.Run("unknown slug is a 404 page", func(t *testing.T) {
		w := env.get("/course/hidden/")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Page not found")
	})
}

func TestPageTitlesUsePlainDashes(t *testing.T) {
	env := newTestEnv()
	for _, path := range []string{"/", "/glossary/", "/courses/", "/contact/", "/login/", "/course/nope/"} {
		w := env.get(path)
		assert.NotContains(t, w.Body.String(), "—", path)
	}
}

func TestContactPage(t *testing.T) {
	env := newTestEnv()

	t.Run("form renders without a confirmation", func(t *testing.T) {
		w := env.get("/contact/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Contact us")
		assert.NotContains(t, w.Body.String(), "Your message has been sent!")
	})

	t.Run("submitting redirects back with a confirmation", func(t *testing.T) {
		w := env.postForm("/contact/", url.Values{
			"name":    {"aziza"},
			"email":   {"aziza@example.com"},
			"message": {"hello"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/contact/?sent=1", w.Header().Get("Location"))

		confirmed := env.get("/contact/?sent=1")
		require.Equal(t, http.StatusOK, confirmed.Code)
		assert.Contains(t, confirmed.Body.String(), "Your message has been sent!")
	})
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv()
	env.auth.user = &models.User{ID: uuid.New(), Username: "aziza"}

	t.Run("bad credentials re-render the form", func(t *testing.T) {
		w := env.postForm("/login/", url.Values{"username": {"aziza"}, "password": {"wrong"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password.")
	})

	t.Run("good credentials set a session and redirect", func(t *testing.T) {
		w := env.postForm("/login/", url.Values{"username": {"aziza"}, "password": {"correct-horse"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		cookie := sessionCookieFrom(t, w)
		profile := env.get("/profile/", cookie)
		require.Equal(t, http.StatusOK, profile.Code)
		assert.Contains(t, profile.Body.String(), "aziza")
	})
}

func TestProfileRequiresLogin(t *testing.T) {
	env := newTestEnv()
	w := env.get("/profile/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv()
	env.auth.user = &models.User{ID: uuid.New(), Username: "aziza"}

	login := env.postForm("/login/", url.Values{"username": {"aziza"}, "password": {"correct-horse"}})
	cookie := sessionCookieFrom(t, login)

	logout := env.get("/logout/", cookie)
	require.Equal(t, http.StatusFound, logout.Code)

	for _, c := range logout.Result().Cookies() {
		if c.Name == sessionCookie {
			assert.Empty(t, c.Value)
		}
	}
}
