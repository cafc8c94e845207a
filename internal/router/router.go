package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "med-companion/docs" // documentación swagger generada
	aiopenai "med-companion/internal/adapters/ai/openai"
	"med-companion/internal/adapters/notify/local"
	"med-companion/internal/adapters/notify/pushgw"
	mem "med-companion/internal/adapters/storage/memory"
	pg "med-companion/internal/adapters/storage/postgres"
	"med-companion/internal/domain/adherence"
	"med-companion/internal/domain/chat"
	"med-companion/internal/domain/interactions"
	"med-companion/internal/domain/medications"
	"med-companion/internal/domain/reminders"
	"med-companion/internal/middleware"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/ai"
	"med-companion/internal/ports/auth"
	"med-companion/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: scheduler de triggers. Si no viene, usa el push gateway
	// cuando está configurado por env, o el registry local en su defecto.
	Notifier notify.Scheduler

	// Opcional: asistente de IA. Si no viene, se arma desde env (sin
	// OPENAI_API_KEY el adapter responde con error explícito).
	Assistant ai.Assistant

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	var (
		medsRepo   medications.Repository
		dosesRepo  adherence.Repository
		checksRepo interactions.Repository
		chatRepo   chat.Repository
	)

	if db != nil {
		medsRepo = pg.NewMedicationsRepo(db)
		dosesRepo = pg.NewAdherenceRepo(db)
		checksRepo = pg.NewInteractionsRepo(db)
		chatRepo = pg.NewChatRepo(db)
	} else {
		medsRepo = mem.NewMedicationsRepo()
		dosesRepo = mem.NewAdherenceRepo()
		checksRepo = mem.NewInteractionsRepo()
		chatRepo = mem.NewChatRepo()
	}

	notifier := opts.Notifier
	if notifier == nil {
		if gw := pushgw.NewFromEnv(); gw.IsConfigured() {
			notifier = gw
		} else {
			reg := local.NewRegistry(log)
			_ = reg.Init(context.Background())
			notifier = reg
		}
	}

	assistant := opts.Assistant
	if assistant == nil {
		assistant = aiopenai.NewFromEnv()
	}

	// Services por módulo
	medsSvc := medications.NewService(medsRepo)
	schedSvc := reminders.NewScheduler(notifier, log)
	dosesSvc := adherence.NewService(dosesRepo, medsSvc)
	checksSvc := interactions.NewService(checksRepo, medsSvc, assistant, log)
	chatSvc := chat.NewService(chatRepo, medsSvc, assistant, log)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc, schedSvc)
	adherence.RegisterRoutes(r, dosesSvc)
	interactions.RegisterRoutes(r, checksSvc)
	chat.RegisterRoutes(r, chatSvc)

	return r
}
