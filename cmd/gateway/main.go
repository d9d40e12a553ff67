package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	api "github.com/Abdur1603/ai-interview-assessment/internal/api/http"
	"github.com/Abdur1603/ai-interview-assessment/internal/assess"
	auth "github.com/Abdur1603/ai-interview-assessment/internal/auth/middleware"
	"github.com/Abdur1603/ai-interview-assessment/internal/config"
	"github.com/Abdur1603/ai-interview-assessment/internal/db"
	"github.com/Abdur1603/ai-interview-assessment/internal/grader"
	"github.com/Abdur1603/ai-interview-assessment/internal/llm"
	"github.com/Abdur1603/ai-interview-assessment/internal/media"
	"github.com/Abdur1603/ai-interview-assessment/internal/rbac"
	"github.com/Abdur1603/ai-interview-assessment/internal/rubric"
	"github.com/Abdur1603/ai-interview-assessment/internal/session"
	"github.com/Abdur1603/ai-interview-assessment/internal/speech"
	"github.com/Abdur1603/ai-interview-assessment/internal/storage"
	"github.com/Abdur1603/ai-interview-assessment/internal/store"
	syncx "github.com/Abdur1603/ai-interview-assessment/internal/sync"
	"github.com/Abdur1603/ai-interview-assessment/internal/transcribe"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// --- DB (report archive + event log only; live sessions are in-memory) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	archive := store.NewReportArchive(dbh)
	events := syncx.NewEventRepo(dbh)

	// --- Rubrics ---
	rubrics := rubric.Default()
	if cfg.RubricPath != "" {
		rubrics, err = rubric.LoadFile(cfg.RubricPath)
		if err != nil {
			log.Fatalf("rubric load failed: %v", err)
		}
	}

	// --- Reasoning service with credential failover ---
	callers := make([]llm.Caller, 0, len(cfg.LLMAPIKeys))
	for _, key := range cfg.LLMAPIKeys {
		callers = append(callers, llm.NewClient(cfg.LLMBaseURL, cfg.LLMModel, key, cfg.LLMTemperature))
	}
	failover, err := llm.NewFailover(callers, log)
	if err != nil {
		log.Fatalf("llm setup failed: %v", err)
	}
	grd := grader.New(rubrics, failover, log)

	// --- Media + transcription ---
	proc, err := media.NewProcessor()
	if err != nil {
		log.Fatalf("media tools missing: %v", err)
	}
	var stt transcribe.Transcriber
	if cfg.WhisperModelPath != "" {
		stt, err = transcribe.NewLocal(cfg.WhisperBinary, cfg.WhisperModelPath)
		if err != nil {
			log.Fatalf("local transcriber setup failed: %v", err)
		}
		log.WithField("model", cfg.WhisperModelPath).Info("using local transcription")
	} else {
		stt = transcribe.NewRemote(cfg.LLMBaseURL, cfg.WhisperCloudModel, cfg.LLMAPIKeys[0])
		log.WithField("model", cfg.WhisperCloudModel).Info("using cloud transcription")
	}

	var pauses speech.PauseDetector
	if cfg.AnalyzerURL != "" {
		pauses = speech.NewAnalyzerClient(cfg.AnalyzerURL)
	}

	svc := assess.NewService(proc, stt, pauses, grd, rubrics, archive, events, cfg.ProjectScore, log)
	registry := session.NewRegistry()

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	loginCheck := auth.LoginCheck{Username: cfg.AssessorUser, PassHash: cfg.AssessorPassHash}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	// No global request timeout: answer analysis runs ffmpeg and the
	// transcriber and legitimately takes minutes.

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, loginCheck))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("session:create")).
			Post("/sessions", api.CreateSessionHandler(registry, svc))
		pr.With(rbac.Require("session:view")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(registry, svc))
		pr.With(rbac.Require("session:reset")).
			Delete("/sessions/{sessionID}", api.ResetSessionHandler(registry, svc))

		pr.With(rbac.Require("answer:analyze")).
			Post("/sessions/{sessionID}/questions/{questionID}/answer", api.AnalyzeAnswerHandler(registry, svc, bs))

		pr.With(rbac.Require("session:view")).
			Get("/sessions/{sessionID}/events", api.SessionEventsHandler(events))

		pr.With(rbac.Require("report:generate")).
			Get("/sessions/{sessionID}/report", api.GenerateReportHandler(registry, svc))
		pr.With(rbac.Require("session:view")).
			Get("/reports", api.ListReportsHandler(archive))
		pr.With(rbac.Require("session:view")).
			Get("/reports/{reportID}", api.GetReportHandler(archive))

		pr.Route("/media", func(mr chi.Router) {
			mr.Use(rbac.Require("session:view"))
			api.MountMedia(mr, bs)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "db": cfg.DBDriver}).Info("listening")
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
