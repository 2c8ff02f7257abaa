package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/learnloop/courseai/internal/api/handlers"
	"github.com/learnloop/courseai/internal/api/middleware"
	"github.com/learnloop/courseai/internal/cache"
	"github.com/learnloop/courseai/internal/config"
	"github.com/learnloop/courseai/internal/llm"
	"github.com/learnloop/courseai/internal/queue"
	"github.com/learnloop/courseai/internal/speech"
)

const narrationCacheTTL = 24 * time.Hour

// routeCost weighs requests for the rate limiter. Health probes are
// free so orchestrator checks never trip the limit; synthesis and
// LLM streams hold upstream connections and cost more than the rest.
func routeCost(r *http.Request) float64 {
	switch r.URL.Path {
	case "/healthz", "/readyz":
		return 0
	case "/synthesize-speech", "/chat-stream", "/lesson-chat-stream", "/teach-segment":
		return 4
	default:
		return 1
	}
}

type Router struct {
	mux   *chi.Mux
	redis *redis.Client
	cfg   *config.Config
}

func NewRouter(rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		redis: rdb,
		cfg:   cfg,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(20, 80, routeCost)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler(rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	speechGW := speech.NewGateway(rt.cfg.Speech)
	llmGW := llm.NewGateway(rt.cfg.LLM)

	var narrCache *cache.NarrationCache
	var queueClient *queue.Client
	if rt.redis != nil {
		narrCache = cache.NewNarrationCache(rt.redis, narrationCacheTTL)
		queueClient = queue.NewClient(rt.cfg.Redis)
	}

	speechH := handlers.NewSpeechHandler(speechGW, narrCache, queueClient)
	r.Post("/synthesize-speech", speechH.Synthesize)
	r.Post("/prefetch-narration", speechH.Prefetch)

	chatH := handlers.NewChatHandler(llmGW, rt.cfg.LLM.DefaultModel)
	r.Post("/chat-stream", chatH.ChatStream)
	r.Post("/lesson-chat-stream", chatH.LessonChatStream)

	teachH := handlers.NewTeachHandler(llmGW, rt.cfg.LLM.DefaultModel)
	r.Post("/teach-segment", teachH.TeachSegment)

	return r
}
