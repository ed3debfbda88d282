// Package pages serves the server-rendered HTML side of the platform.
// Templates ship embedded in the binary; authentication uses a signed
// session cookie instead of the API's bearer tokens.
package pages

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"EduPortal/internal/models"
	"EduPortal/internal/service/auth"
	"EduPortal/internal/service/catalog"
	"EduPortal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for the gin engine.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

const (
	indexCourseLimit = 6
	indexPostLimit   = 3
	coursePageSize   = 12

	// maxPage keeps (page-1)*size well inside int range for any input.
	maxPage = 1_000_000
)

type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.User, string, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
	IssueSession(userID uuid.UUID) (string, error)
	ParseSession(raw string) (uuid.UUID, error)
}

type CatalogService interface {
	ListCourses(ctx context.Context, filter catalog.Filter, limit, offset int) ([]models.CourseSummary, int, error)
	CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type GlossaryService interface {
	ListTerms(ctx context.Context) ([]models.Term, error)
}

type BlogService interface {
	ListPosts(ctx context.Context, limit, offset int) ([]models.PostView, int, error)
}

type EnrollmentService interface {
	EnrollmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrollmentView, error)
}

type PagesHandler struct {
	auth        AuthService
	catalog     CatalogService
	glossary    GlossaryService
	blog        BlogService
	enrollments EnrollmentService
	sessionTTL  time.Duration
	log         logger.Log
}

func NewPagesHandler(
	l logger.Log,
	authService AuthService,
	catalogService CatalogService,
	glossaryService GlossaryService,
	blogService BlogService,
	enrollmentService EnrollmentService,
	sessionTTL time.Duration,
) *PagesHandler {
	return &PagesHandler{
		auth:        authService,
		catalog:     catalogService,
		glossary:    glossaryService,
		blog:        blogService,
		enrollments: enrollmentService,
		sessionTTL:  sessionTTL,
		log:         l,
	}
}

// render adds the logged-in user to every template's data.
func (h *PagesHandler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := sessionUserFrom(c); ok {
		data["User"] = user
	}
	c.HTML(status, name, data)
}

func (h *PagesHandler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", nil)
}

func (h *PagesHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	courses, _, err := h.catalog.ListCourses(ctx, catalog.Filter{}, indexCourseLimit, 0)
	if err != nil {
		h.log.ErrorErr("index: failed to list courses", err)
	}
	posts, _, err := h.blog.ListPosts(ctx, indexPostLimit, 0)
	if err != nil {
		h.log.ErrorErr("index: failed to list posts", err)
	}
	h.render(c, http.StatusOK, "index.html", gin.H{
		"Courses": courses,
		"Posts":   posts,
	})
}

func (h *PagesHandler) Glossary(c *gin.Context) {
	terms, err := h.glossary.ListTerms(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("glossary page failed", err)
	}
	h.render(c, http.StatusOK, "glossary.html", gin.H{"Terms": terms})
}

func (h *PagesHandler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", gin.H{"Sent": c.Query("sent") != ""})
}

// Contact acknowledges the form and redirects back. Messages are not
// delivered anywhere yet.
func (h *PagesHandler) Contact(c *gin.Context) {
	c.Redirect(http.StatusFound, "/contact/?sent=1")
}

func (h *PagesHandler) Courses(c *gin.Context) {
	ctx := c.Request.Context()
	filter := catalog.Filter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	courses, total, err := h.catalog.ListCourses(ctx, filter, coursePageSize, (page-1)*coursePageSize)
	if err != nil {
		h.log.ErrorErr("courses page failed", err)
	}
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.log.ErrorErr("courses page: categories failed", err)
	}
	h.render(c, http.StatusOK, "courses.html", gin.H{
		"Courses":    courses,
		"Total":      total,
		"Categories": categories,
		"Category":   filter.CategorySlug,
		"Search":     filter.Search,
		"Page":       page,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"HasPrev":    page > 1,
		"HasNext":    page*coursePageSize < total,
	})
}

func (h *PagesHandler) CourseDetail(c *gin.Context) {
	course, err := h.catalog.CourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.notFound(c)
		return
	}
	h.render(c, http.StatusOK, "course_detail.html", gin.H{"Course": course})
}

func (h *PagesHandler) LoginForm(c *gin.Context) {
	if _, ok := sessionUserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"Username": ""})
}

func (h *PagesHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Error":    "Invalid username or password.",
			"Username": username,
		})
		return
	}

	h.startSession(c, user.ID, "login.html")
}

func (h *PagesHandler) RegisterForm(c *gin.Context) {
	if _, ok := sessionUserFrom(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "register.html", gin.H{"Username": "", "Email": ""})
}

func (h *PagesHandler) Register(c *gin.Context) {
	input := auth.RegisterInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Password2: c.PostForm("password2"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Phone:     c.PostForm("phone"),
	}

	user, _, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		h.render(c, http.StatusBadRequest, "register.html", gin.H{
			"Error":    err.Error(),
			"Username": input.Username,
			"Email":    input.Email,
		})
		return
	}

	h.startSession(c, user.ID, "register.html")
}

func (h *PagesHandler) Logout(c *gin.Context) {
	h.clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *PagesHandler) Profile(c *gin.Context) {
	user, ok := sessionUserFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login/")
		return
	}
	enrollments, err := h.enrollments.EnrollmentsByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.log.ErrorErr("profile page failed", err, "user_id", user.ID)
	}
	h.render(c, http.StatusOK, "profile.html", gin.H{
		"User":        user,
		"Enrollments": enrollments,
	})
}

func (h *PagesHandler) startSession(c *gin.Context, userID uuid.UUID, failTemplate string) {
	value, err := h.auth.IssueSession(userID)
	if err != nil {
		h.log.ErrorErr("failed to issue session", err, "user_id", userID)
		h.render(c, http.StatusInternalServerError, failTemplate, gin.H{
			"Error":    "Something went wrong, try again.",
			"Username": "",
			"Email":    "",
		})
		return
	}
	h.setSession(c, value)
	c.Redirect(http.StatusFound, "/")
}
