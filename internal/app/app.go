package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"EduPortal/internal/app/server"
	"EduPortal/internal/config"
	"EduPortal/internal/delivery/http"
	"EduPortal/internal/service"
	"EduPortal/internal/service/auth"
	"EduPortal/internal/service/blog"
	"EduPortal/internal/service/catalog"
	"EduPortal/internal/service/enrollment"
	"EduPortal/internal/service/glossary"
	"EduPortal/internal/service/serialize"
	"EduPortal/internal/service/users"
	"EduPortal/internal/storage/minio_storage"
	"EduPortal/internal/storage/postgres"
	"EduPortal/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	if err := pg.Migrate(context.Background()); err != nil {
		log.FatalErr("error applying schema", err)
	}

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	media, err := minio_storage.NewMediaStorage(minioStorage, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing media bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	termRepo := postgres.NewTermPostgres(pg.Pool)
	categoryRepo := postgres.NewCategoryPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	postRepo := postgres.NewPostPostgres(pg.Pool)

	serializer := serialize.New(log, media)
	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)

	u := service.Collection{
		AuthService:       auth.NewAuthService(log, sessions, userRepo, tokenRepo),
		CatalogService:    catalog.NewCatalogService(log, courseRepo, categoryRepo, serializer),
		GlossaryService:   glossary.NewGlossaryService(log, termRepo),
		BlogService:       blog.NewBlogService(log, postRepo, serializer),
		EnrollmentService: enrollment.NewEnrollmentService(log, enrollmentRepo, courseRepo, serializer),
		UserService:       users.NewUserService(log, userRepo, media, serializer),
	}

	r := http.InitRoutes(log, cfg, u, serializer)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
