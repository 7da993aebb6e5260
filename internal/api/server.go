package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/nftstake/weight-indexer/internal/observability/tracing"
	"github.com/nftstake/weight-indexer/internal/services"
	"github.com/nftstake/weight-indexer/internal/types"
)

// Service is the accounting surface exposed over HTTP.
type Service interface {
	Ping(ctx context.Context) error
	CreatePool(ctx context.Context, req *services.CreatePoolRequest) (*services.PoolView, *types.Error)
	GetPool(ctx context.Context, poolID string) (*services.PoolView, *types.Error)
	ChangeRate(ctx context.Context, poolID string, rate uint64) (*services.PoolView, *types.Error)
	ClosePool(ctx context.Context, poolID string) (*services.PoolView, *types.Error)
	PoolWeight(ctx context.Context, poolID string) (*services.PoolWeightView, *types.Error)
	Stake(ctx context.Context, poolID string, req *services.StakeRequest) (*services.StakeView, *types.Error)
	GetStake(ctx context.Context, poolID, assetID string) (*services.StakeView, *types.Error)
	Unstake(ctx context.Context, poolID, assetID string) (*services.OperationResult, *types.Error)
	WithdrawReward(ctx context.Context, poolID, assetID string) (*services.OperationResult, *types.Error)
}

var _ Service = (*services.Service)(nil)

type Server struct {
	httpServer *http.Server
	handlers   *handlers
}

func New(cfg *config.ServerConfig, service Service) *Server {
	h := &handlers{service: service}
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      h.router(),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		handlers: h,
	}
}

func (h *handlers) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tracing.Middleware)

	r.Get("/healthcheck", h.wrap("healthcheck", http.StatusOK, h.healthCheck))

	r.Route("/v1/pools", func(r chi.Router) {
		r.Post("/", h.wrap("create_pool", http.StatusCreated, h.createPool))
		r.Route("/{pool}", func(r chi.Router) {
			r.Get("/", h.wrap("get_pool", http.StatusOK, h.getPool))
			r.Post("/rates", h.wrap("change_rate", http.StatusOK, h.changeRate))
			r.Post("/close", h.wrap("close_pool", http.StatusOK, h.closePool))
			r.Get("/weight", h.wrap("pool_weight", http.StatusOK, h.poolWeight))

			r.Post("/stakes", h.wrap("stake", http.StatusCreated, h.stake))
			r.Route("/stakes/{asset}", func(r chi.Router) {
				r.Get("/", h.wrap("get_stake", http.StatusOK, h.getStake))
				r.Post("/unstake", h.wrap("unstake", http.StatusOK, h.unstake))
				r.Post("/withdraw", h.wrap("withdraw_reward", http.StatusOK, h.withdrawReward))
			})
		})
	})

	return r
}

// Handler exposes the routes, for serving them from a test server.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	log.Info().Msgf("Starting server on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
