package app

import (
	"context"
	"os"

	playerAPI "fortune_wheel/internal/api/player"
	shopAPI "fortune_wheel/internal/api/shop"
	wheelAPI "fortune_wheel/internal/api/wheel"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/config/env"
	"fortune_wheel/internal/lib/logger/sl"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/repository/memory"
	"fortune_wheel/internal/repository/player_repo"
	"fortune_wheel/internal/repository/purchase_repo"
	"fortune_wheel/internal/repository/spin_repo"
	"fortune_wheel/internal/repository/wheel_stats_repo"
	"fortune_wheel/internal/service"
	"fortune_wheel/internal/service/player"
	"fortune_wheel/internal/service/shop"
	"fortune_wheel/internal/service/wheel"
	"fortune_wheel/pkg/rng"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type ServiceProvider struct {
	appCfg config.AppConfig
	log    *slog.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool
	memStore *memory.Storage

	// Player bits
	jwtCfg       config.JWTConfig
	profileCfg   config.ProfileConfig
	playerRepo   repository.PlayerRepository
	purchaseRepo repository.PurchaseRepository
	playerServ   service.PlayerService
	playerHand   *playerAPI.Handler

	// Wheel bits
	wheelCfg       config.WheelConfig
	serverSeed     string
	spinRepo       repository.SpinRepository
	wheelStatsRepo repository.WheelStatsRepository
	wheelServ      service.WheelService
	wheelHand      *wheelAPI.Handler

	// Shop bits
	shopCfg  config.ShopConfig
	shopServ service.ShopService
	shopHand *shopAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) AppCfg() config.AppConfig {
	if sp.appCfg == nil {
		cfg, err := env.NewAppConfig()
		if err != nil {
			panic("failed to get app config: " + err.Error())
		}
		sp.appCfg = cfg
	}
	return sp.appCfg
}

func (sp *ServiceProvider) Logger() *slog.Logger {
	if sp.log == nil {
		sp.log = setupLogger(sp.AppCfg().Env())
	}
	return sp.log
}

func (sp *ServiceProvider) postgres() bool {
	return sp.AppCfg().Storage() == config.StoragePostgres
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// MemoryStorage хранилище по умолчанию, состояние живет до перезапуска
func (sp *ServiceProvider) MemoryStorage() *memory.Storage {
	if sp.memStore == nil {
		sp.memStore = memory.NewStorage()
	}
	return sp.memStore
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if !sp.postgres() {
			sp.txManager = memory.NewTxManager(sp.MemoryStorage())
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) ProfileCfg() config.ProfileConfig {
	if sp.profileCfg == nil {
		cfg, err := env.NewProfileConfigFromYAML(sp.AppCfg().GameConfigPath())
		if err != nil {
			panic("failed to get profile config: " + err.Error())
		}
		sp.profileCfg = cfg
	}
	return sp.profileCfg
}

func (sp *ServiceProvider) PlayerRepository(ctx context.Context) repository.PlayerRepository {
	if sp.playerRepo == nil {
		if sp.postgres() {
			sp.playerRepo = player_repo.NewPlayerRepository(sp.DBClient(ctx))
		} else {
			sp.playerRepo = sp.MemoryStorage()
		}
	}
	return sp.playerRepo
}

func (sp *ServiceProvider) PurchaseRepository(ctx context.Context) repository.PurchaseRepository {
	if sp.purchaseRepo == nil {
		if sp.postgres() {
			sp.purchaseRepo = purchase_repo.NewPurchaseRepository(sp.DBClient(ctx))
		} else {
			sp.purchaseRepo = sp.MemoryStorage()
		}
	}
	return sp.purchaseRepo
}

func (sp *ServiceProvider) PlayerService(ctx context.Context) service.PlayerService {
	if sp.playerServ == nil {
		sp.playerServ = player.NewPlayerService(
			sp.ProfileCfg(),
			sp.JWTCfg(),
			sp.PlayerRepository(ctx),
			sp.PurchaseRepository(ctx),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.playerServ
}

func (sp *ServiceProvider) PlayerHandler(ctx context.Context) *playerAPI.Handler {
	if sp.playerHand == nil {
		sp.playerHand = playerAPI.NewHandler(playerAPI.HandlerDeps{
			Serv: sp.PlayerService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.playerHand
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(sp.AppCfg().GameConfigPath())
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

// ServerSeed сид генератора вращений. Без FAIR_SERVER_SEED генерируется на время жизни процесса
func (sp *ServiceProvider) ServerSeed() string {
	if sp.serverSeed == "" {
		seed := sp.AppCfg().FairServerSeed()
		if seed == "" {
			var err error
			seed, err = rng.NewServerSeed()
			if err != nil {
				panic("failed to generate server seed: " + err.Error())
			}
		}
		sp.serverSeed = seed

		sp.Logger().Info("fair server seed ready", slog.String("seed_hash", rng.HashSeed(seed)))
	}
	return sp.serverSeed
}

func (sp *ServiceProvider) SpinRepository(ctx context.Context) repository.SpinRepository {
	if sp.spinRepo == nil {
		if sp.postgres() {
			sp.spinRepo = spin_repo.NewSpinRepository(sp.DBClient(ctx))
		} else {
			sp.spinRepo = sp.MemoryStorage()
		}
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) WheelStatsRepository() repository.WheelStatsRepository {
	if sp.wheelStatsRepo == nil {
		sp.wheelStatsRepo = wheel_stats_repo.NewWheelStatsRepository(sp.WheelCfg().Segments(), 0)
	}
	return sp.wheelStatsRepo
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		sp.wheelServ = wheel.NewWheelService(
			sp.WheelCfg(),
			sp.ProfileCfg(),
			sp.SpinRepository(ctx),
			sp.WheelStatsRepository(),
			sp.PlayerService(ctx),
			sp.TXManager(ctx),
			wheel.FairRandom(sp.ServerSeed()),
			sp.Logger(),
		)
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{
			Serv:     sp.WheelService(ctx),
			Log:      sp.Logger(),
			SeedHash: rng.HashSeed(sp.ServerSeed()),
		})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) ShopCfg() config.ShopConfig {
	if sp.shopCfg == nil {
		cfg, err := env.NewShopConfigFromYAML(sp.AppCfg().GameConfigPath())
		if err != nil {
			panic("failed to get shop config: " + err.Error())
		}
		sp.shopCfg = cfg
	}
	return sp.shopCfg
}

func (sp *ServiceProvider) ShopService(ctx context.Context) service.ShopService {
	if sp.shopServ == nil {
		sp.shopServ = shop.NewShopService(sp.ShopCfg(), sp.PlayerService(ctx), sp.PurchaseRepository(ctx))
	}
	return sp.shopServ
}

func (sp *ServiceProvider) ShopHandler(ctx context.Context) *shopAPI.Handler {
	if sp.shopHand == nil {
		sp.shopHand = shopAPI.NewHandler(shopAPI.HandlerDeps{
			Serv: sp.ShopService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.shopHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.Logger(sp.Logger()))
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		auth := middleware.Auth(sp.PlayerService(ctx))

		// Player endpoints
		playerHandler := sp.PlayerHandler(ctx)
		r.Post("/players", playerHandler.Register)
		r.Route("/profile", func(rr chi.Router) {
			rr.Use(auth)
			rr.Get("/", playerHandler.Profile)
			rr.Post("/daily-bonus", playerHandler.ClaimDailyBonus)
		})

		// Wheel endpoints
		wheelHandler := sp.WheelHandler(ctx)
		r.Route("/wheel", func(rr chi.Router) {
			rr.Get("/", wheelHandler.Config)
			rr.Get("/stats", wheelHandler.Stats)
			rr.Get("/fairness", wheelHandler.Fairness)
			rr.With(auth).Post("/spin", wheelHandler.Spin)
			rr.With(auth).Get("/spin", wheelHandler.Result)
			rr.With(auth).Delete("/spin", wheelHandler.Cancel)
		})

		// Shop endpoints
		shopHandler := sp.ShopHandler(ctx)
		r.Route("/shop", func(rr chi.Router) {
			rr.Use(auth)
			rr.Get("/items", shopHandler.Items)
			rr.Post("/purchase", shopHandler.Purchase)
			rr.Get("/purchases", shopHandler.Purchases)
		})

		sp.router = r
	}

	return sp.router
}

// Close отбрасывает ожидающие раскрытия вращений и закрывает пул соединений
func (sp *ServiceProvider) Close() {
	if sp.wheelServ != nil {
		sp.wheelServ.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = sl.Discard()
	}

	return log
}
