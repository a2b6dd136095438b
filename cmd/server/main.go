package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/config"
	"github.com/uniak/teaching-backend/internal/database"
	"github.com/uniak/teaching-backend/internal/handler"
	"github.com/uniak/teaching-backend/internal/logger"
	"github.com/uniak/teaching-backend/internal/middleware"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
	"github.com/uniak/teaching-backend/internal/router"
	"github.com/uniak/teaching-backend/internal/service"
	"github.com/uniak/teaching-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting teaching catalog API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	instituteRepo := repository.NewInstituteRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	courseTypeRepo := repository.NewCourseTypeRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	studyProgramRepo := repository.NewStudyProgramRepository(pool)
	curriculumSubjectRepo := repository.NewCurriculumSubjectRepository(pool)
	studySubjectRepo := repository.NewStudySubjectRepository(pool)
	semesterRepo := repository.NewSemesterRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	curriculumRepo := repository.NewCurriculumRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo, log)
	instituteService := service.NewInstituteService(instituteRepo, log)
	departmentService := service.NewDepartmentService(pool, departmentRepo, log)
	courseTypeService := service.NewCourseTypeService(courseTypeRepo, log)
	teacherService := service.NewTeacherService(teacherRepo, log)
	studyProgramService := service.NewStudyProgramService(pool, studyProgramRepo, log)
	curriculumSubjectService := service.NewCurriculumSubjectService(pool, curriculumSubjectRepo, log)
	studySubjectService := service.NewStudySubjectService(pool, studySubjectRepo, log)
	semesterService := service.NewSemesterService(semesterRepo, log)
	courseService := service.NewCourseService(pool, courseRepo, log)
	curriculumService := service.NewCurriculumService(pool, curriculumRepo, log)
	userService := service.NewUserService(pool, userRepo, authService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"postgres": pool,
		"redis":    handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	}, log)
	handlers := &router.Handlers{
		Auth:               handler.NewAuthHandler(authService, log),
		Health:             healthHandler,
		Courses:            handler.NewResource[model.Course, model.CourseInput]("Course", courseService, (*model.Course).Input, log),
		CourseTypes:        handler.NewResource[model.CourseType, model.CourseTypeInput]("Course type", courseTypeService, (*model.CourseType).Input, log),
		StudyPrograms:      handler.NewResource[model.StudyProgram, model.StudyProgramInput]("Study program", studyProgramService, (*model.StudyProgram).Input, log),
		Teachers:           handler.NewResource[model.Teacher, model.TeacherInput]("Teacher", teacherService, (*model.Teacher).Input, log),
		Departments:        handler.NewResource[model.Department, model.DepartmentInput]("Department", departmentService, (*model.Department).Input, log),
		Institutes:         handler.NewResource[model.Institute, model.InstituteInput]("Institute", instituteService, (*model.Institute).Input, log),
		Semesters:          handler.NewResource[model.Semester, model.SemesterInput]("Semester", semesterService, (*model.Semester).Input, log),
		Curricula:          handler.NewResource[model.Curriculum, model.CurriculumInput]("Curriculum", curriculumService, (*model.Curriculum).Input, log),
		CurriculumSubjects: handler.NewResource[model.CurriculumSubject, model.CurriculumSubjectInput]("Curriculum subject", curriculumSubjectService, (*model.CurriculumSubject).Input, log),
		StudySubjects:      handler.NewResource[model.StudySubject, model.StudySubjectInput]("Study subject", studySubjectService, (*model.StudySubject).Input, log),
		Users:              handler.NewResource[model.User, model.UserInput]("User", userService, (*model.User).Input, log),
	}

	// Rate limiter for auth routes (AUTH_RATE_LIMIT_PER_MINUTE per IP).
	authLimiter := middleware.NewRateLimiter(middleware.NewRedisCounter(rdb), "auth", cfg.AuthRatePerMinute, time.Minute, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, authLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
