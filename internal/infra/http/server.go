package http

import (
	"context"
	"log"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/config"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/infra/cache"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/infra/db"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/infra/policyrego"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg config.Config
	r   *gin.Engine

	governance   *usecase.GovernanceService
	derivation   *usecase.DerivationService
	portfolio    *usecase.PortfolioService
	events       usecase.EventRepository
	capabilities usecase.CapabilityRepository

	authenticator Authenticator
	authorizer    usecases.Authorizer
}

type ServerDeps struct {
	Governance   *usecase.GovernanceService
	Derivation   *usecase.DerivationService
	Portfolio    *usecase.PortfolioService
	Events       usecase.EventRepository
	Capabilities usecase.CapabilityRepository

	Authenticator Authenticator
	Authorizer    usecases.Authorizer
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	useCaseRepo := db.NewUseCaseRepository(store.DB)
	capabilityRepo := db.NewCapabilityRepository(store.DB)
	eventRepo := db.NewEventRepository(store.DB)

	detector := governance.NewRegressionDetector(cfg.EnforcementDate)
	governanceSvc := usecase.NewGovernanceService(useCaseRepo, eventRepo, detector, governance.DefaultPhaseConfig())
	derivationSvc := usecase.NewDerivationService(useCaseRepo, capabilityRepo, eventRepo, capability.DefaultBenchmarkConfig())
	portfolioSvc := usecase.NewPortfolioService(capabilityRepo, nil)

	if cfg.RedisAddr != "" {
		summaryCache, err := cache.NewPortfolioCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.PortfolioCacheTTL)
		if err != nil {
			log.Printf("portfolio cache disabled: %v", err)
		} else {
			portfolioSvc.Cache = summaryCache
			derivationSvc.Cache = summaryCache
		}
	}

	if cfg.PolicyBundlePath != "" {
		engine, err := policyrego.NewEngineFromBundlePath(context.Background(), cfg.PolicyBundlePath)
		if err != nil {
			log.Fatalf("load activation policy bundle: %v", err)
		}
		governanceSvc.Policy = engine
	}

	return NewServerWithDeps(cfg, ServerDeps{
		Governance:   governanceSvc,
		Derivation:   derivationSvc,
		Portfolio:    portfolioSvc,
		Events:       eventRepo,
		Capabilities: capabilityRepo,
	})
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:           cfg,
		r:             r,
		governance:    deps.Governance,
		derivation:    deps.Derivation,
		portfolio:     deps.Portfolio,
		events:        deps.Events,
		capabilities:  deps.Capabilities,
		authenticator: deps.Authenticator,
		authorizer:    deps.Authorizer,
	}
	if s.authenticator == nil {
		s.authenticator = NewHeaderAuthenticator()
	}
	if s.authorizer == nil {
		s.authorizer = NewAuthorizer()
	}
	s.routes()
	return s
}

func (s *Server) Run() error {
	addr := s.cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("governance api listening on %s", addr)
	return s.r.Run(addr)
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	read := func(permission string) gin.HandlerFunc {
		return authMiddleware(s.authenticator, s.authorizer, permission)
	}

	v1 := s.r.Group("/v1")
	v1.GET("/governance/activation-statuses", s.handleActivationStatuses)

	v1.POST("/usecases", read("usecases:write"), s.handleCreateUseCase)
	v1.GET("/usecases", read("usecases:read"), s.handleListUseCases)
	v1.GET("/usecases/:id", read("usecases:read"), s.handleGetUseCase)
	v1.PATCH("/usecases/:id", read("usecases:write"), s.handleUpdateUseCase)
	v1.POST("/usecases/:id/status", read("usecases:write"), s.handleChangeStatus)
	v1.GET("/usecases/:id/governance-check", read("usecases:read"), s.handleGovernanceCheck)
	v1.POST("/usecases/:id/phase-transition", read("usecases:write"), s.handlePhaseTransition)
	v1.GET("/usecases/:id/events", read("usecases:read"), s.handleListEvents)

	v1.GET("/usecases/:id/capability", read("capability:read"), s.handleGetCapability)
	v1.POST("/usecases/:id/capability/derive", read("capability:write"), s.handleDeriveOne)
	v1.PUT("/usecases/:id/capability", read("capability:write"), s.handleSetCapabilityOverride)
	v1.POST("/derivation/run", read("admin:derivation"), s.handleRunDerivation)

	v1.GET("/portfolio/summary", read("portfolio:read"), s.handlePortfolioSummary)
	v1.GET("/portfolio/staffing-projection", read("portfolio:read"), s.handleStaffingProjection)
}
