package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MentorLink/internal/app/server"
	"MentorLink/internal/config"
	"MentorLink/internal/delivery/http"
	"MentorLink/internal/service"
	"MentorLink/internal/service/announcement"
	"MentorLink/internal/service/assistant"
	"MentorLink/internal/service/auth"
	"MentorLink/internal/service/authoring"
	"MentorLink/internal/service/catalog"
	"MentorLink/internal/service/enrollment"
	"MentorLink/internal/service/identity"
	"MentorLink/internal/storage/elastic"
	"MentorLink/internal/storage/genai"
	"MentorLink/internal/storage/minioStorage"
	"MentorLink/internal/storage/postgres"
	"MentorLink/pkg/logger"
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
		log.FatalErr("error applying migrations", err)
	}

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	courseSearch := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := courseSearch.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error preparing search index", err)
	}

	minioClient, err := minioStorage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	thumbnails, err := minioStorage.NewThumbnailStorage(minioClient, cfg.Minio.ThumbnailBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing thumbnail bucket", err)
	}

	aiClient, err := genai.NewClient(cfg.Assistant.BaseURL, cfg.Assistant.Model, cfg.Assistant.APIKey, cfg.Assistant.Timeout, cfg.Assistant.MaxOutputTokens)
	if err != nil {
		log.FatalErr("error configuring assistant provider", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	profileRepo := postgres.NewProfilePostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	curriculumRepo := postgres.NewCurriculumPostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	quizRepo := postgres.NewQuizPostgres(pg.Pool)
	announcementRepo := postgres.NewAnnouncementPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "mentorlink", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	u := service.Collection{
		Auth:          auth.NewAuthService(log, jwtManager, userRepo, tokenRepo),
		Identity:      identity.NewIdentityService(log, userRepo, profileRepo),
		Catalog:       catalog.NewCatalogService(log, courseRepo, curriculumRepo, quizRepo, userRepo, thumbnails, courseSearch),
		Enrollments:   enrollment.NewEnrollmentService(log, enrollmentRepo, courseRepo, curriculumRepo),
		Authoring:     authoring.NewAuthoringService(log, courseRepo, curriculumRepo, courseSearch, thumbnails),
		Announcements: announcement.NewAnnouncementService(log, announcementRepo),
		Assistant:     assistant.NewAssistantService(log, aiClient),
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server stopped", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
