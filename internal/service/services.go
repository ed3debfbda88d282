package service

import (
	"EduPortal/internal/service/auth"
	"EduPortal/internal/service/blog"
	"EduPortal/internal/service/catalog"
	"EduPortal/internal/service/enrollment"
	"EduPortal/internal/service/glossary"
	"EduPortal/internal/service/users"
)

type Collection struct {
	*auth.AuthService
	*catalog.CatalogService
	*glossary.GlossaryService
	*blog.BlogService
	*enrollment.EnrollmentService
	*users.UserService
}
