package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	api "github.com/quizmint/quizmint-server/internal/api/http"
	"github.com/quizmint/quizmint-server/internal/audit"
	authpkg "github.com/quizmint/quizmint-server/internal/auth"
	auth "github.com/quizmint/quizmint-server/internal/auth/middleware"
	"github.com/quizmint/quizmint-server/internal/bank"
	"github.com/quizmint/quizmint-server/internal/config"
	"github.com/quizmint/quizmint-server/internal/db"
	"github.com/quizmint/quizmint-server/internal/quiz"
	"github.com/quizmint/quizmint-server/internal/rbac"
	"github.com/quizmint/quizmint-server/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := seedAdmin(ctx, dbh, cfg); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	bankStore := bank.NewSQLStore(dbh)
	quizStore := quiz.NewSQLStore(dbh)
	directory := quiz.NewSQLDirectory(dbh)
	svc := quiz.NewService(bankStore, quizStore, directory)
	events := audit.NewLog(dbh)

	exports, err := storage.NewFSStore(cfg.ExportBasePath)
	if err != nil {
		log.Fatalf("export store: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}
	if cfg.EnableGoogleAuth {
		r.Get("/api/auth/google/login", authpkg.GoogleLoginHandler(cfg))
		r.Get("/api/auth/google/callback", authpkg.GoogleCallbackHandler(authSvc, dbh, cfg))
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		// Teacher scope + quiz pipeline
		pr.With(rbac.Require("bank:view")).
			Get("/books", api.ListBooksHandler(svc, events))
		pr.With(rbac.Require("bank:view")).
			Get("/books/{bookID}/tree", api.GetBookTreeHandler(svc))

		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes/generate", api.GenerateQuizHandler(svc, events))
		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.SaveQuizHandler(svc))
		pr.With(rbac.Require("quiz:view-own")).
			Get("/quizzes", api.ListQuizzesHandler(svc))
		pr.With(rbac.Require("quiz:delete-own")).
			Delete("/quizzes/{quizID}", api.DeleteQuizHandler(svc, events))
		pr.With(rbac.Require("quiz:export")).
			Post("/quizzes/{quizID}/export", api.ExportQuizHandler(svc, exports))

		// Bank administration (admin only via RBAC rules)
		pr.With(rbac.Require("bank:edit")).Post("/departments", api.PutDepartmentHandler(bankStore))
		pr.With(rbac.Require("bank:edit")).Post("/grades", api.PutGradeHandler(bankStore))
		pr.With(rbac.Require("bank:edit")).Post("/books", api.PutBookHandler(bankStore))
		pr.With(rbac.Require("bank:edit")).Post("/chapters", api.PutChapterHandler(bankStore))
		pr.With(rbac.Require("bank:edit")).Post("/topics", api.PutTopicHandler(bankStore))
		pr.With(rbac.Require("bank:edit")).Post("/questions", api.CreateQuestionHandler(bankStore))

		pr.With(rbac.Require("question:review")).
			Get("/questions/pending", api.ListPendingQuestionsHandler(bankStore))
		pr.With(rbac.Require("question:review")).
			Post("/questions/{topicID}/{questionID}/review", api.ReviewQuestionHandler(bankStore, events))

		// Users (admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))

		pr.With(rbac.Require("audit:view")).
			Get("/admin/events", api.ListEventsHandler(events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// seedAdmin ensures the bootstrap admin account exists.
func seedAdmin(ctx context.Context, dbh *sql.DB, cfg config.Config) error {
	if cfg.AdminUser == "" {
		return nil
	}
	hash := cfg.AdminPassHash
	if hash == "" {
		// dev default: admin/admin
		b, err := bcrypt.GenerateFromPassword([]byte("admin"), 12)
		if err != nil {
			return err
		}
		hash = string(b)
	}
	var exists int
	err := dbh.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, cfg.AdminUser).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = dbh.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, created_at)
		 VALUES ($1,$2,$3,$4,'admin',$5)`,
		"admin|"+cfg.AdminUser, cfg.AdminUser, cfg.AdminUser+"@localhost", hash, time.Now().Unix())
	return err
}
