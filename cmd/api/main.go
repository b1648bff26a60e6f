package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/prefeitura-rio/app-ferramentas/docs"
	"github.com/prefeitura-rio/app-ferramentas/internal/api/handlers"
	"github.com/prefeitura-rio/app-ferramentas/internal/api/routes"
	"github.com/prefeitura-rio/app-ferramentas/internal/armazenamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/cache"
	"github.com/prefeitura-rio/app-ferramentas/internal/config"
	"github.com/prefeitura-rio/app-ferramentas/internal/db"
	"github.com/prefeitura-rio/app-ferramentas/internal/logger"
	"github.com/prefeitura-rio/app-ferramentas/internal/migration"
	"github.com/prefeitura-rio/app-ferramentas/internal/migration/schemas"
	"github.com/prefeitura-rio/app-ferramentas/internal/observability"
	"github.com/prefeitura-rio/app-ferramentas/internal/services"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
	"github.com/prefeitura-rio/app-ferramentas/internal/typesense"
)

// @title           Ferramentas API
// @version         1.0
// @description     API de inventário e empréstimo de ferramentas: unidades, grupos por nome e categoria, empréstimos e painel de uso
// @termsOfService  http://swagger.io/terms/

// @contact.name   Prefeitura do Rio de Janeiro
// @contact.url    https://prefeitura.rio
// @contact.email  contato@prefeitura.rio

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Token JWT no formato: Bearer {token}

func main() {
	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	zapLogger, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := observability.InitTracer(ctx, cfg, zapLogger)
	defer shutdownTracer()

	database, err := db.New(cfg.DatabaseURL, cfg.DatabaseMaxOpen, cfg.DatabaseMaxIdle, cfg.DatabaseMaxIdleTime)
	if err != nil {
		zapLogger.Fatal("erro ao conectar no banco", zap.Error(err))
	}
	defer database.Close()

	storage := store.NewStorage(database, zapLogger)
	migrator := migration.NewMigrator(database, schemas.NewRegistry(), zapLogger)

	var c cache.Cache
	if cfg.RedisAddr != "" {
		c = cache.NewRedisCache(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.ServiceName+":", zapLogger)
	} else {
		memoria := cache.NewMemoryCache(cfg.CacheMemoryMaxSize)
		memoria.StartCleanupRoutine(ctx, time.Minute)
		c = memoria
		zapLogger.Info("REDIS_ADDR vazio, usando cache em memória")
	}

	var (
		indice        services.IndiceBusca
		checagemBusca handlers.Checagem
	)
	if cfg.SearchEnabled() {
		ts := typesense.NewClient(cfg.TypesenseServerURL(), cfg.TypesenseAPIKey, cfg.TypesenseCollection, zapLogger)
		if err := ts.EnsureCollection(ctx); err != nil {
			zapLogger.Warn("falha ao preparar collection de busca", zap.Error(err))
		}
		indice = ts
		checagemBusca = ts.Health
	} else {
		zapLogger.Info("TYPESENSE_API_KEY vazio, busca textual direto no banco")
	}

	var imagens services.ArmazenamentoImagens
	if storageClient := armazenamento.NewStorageClient(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket, zapLogger); storageClient != nil {
		imagens = storageClient
	}

	var gerador services.GeradorConteudo
	if cfg.GeminiAPIKey != "" {
		g, err := services.NewGeminiGerador(ctx, cfg.GeminiAPIKey, cfg.GeminiChatModel)
		if err != nil {
			zapLogger.Warn("falha ao criar cliente Gemini, identificação por foto desativada", zap.Error(err))
		} else {
			gerador = g
		}
	}

	fuso, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zapLogger.Warn("fuso inválido, usando UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		fuso = time.UTC
	}

	authService := services.NewAuthService(storage, cfg.JWTSecret, cfg.JWTExpiration, zapLogger)
	ferramentaService := services.NewFerramentaService(storage, indice, imagens, c, zapLogger)
	emprestimoService := services.NewEmprestimoService(storage, indice, c, zapLogger)
	dashboardService := services.NewDashboardService(storage, c, cfg.DashboardCacheTTL, zapLogger).ComFuso(fuso)
	identificacaoService := services.NewIdentificacaoService(gerador, zapLogger)

	r := routes.SetupRouter(routes.Dependencias{
		Logger:        zapLogger,
		ServiceName:   cfg.ServiceName,
		Auth:          authService,
		Ferramentas:   ferramentaService,
		Identificacao: identificacaoService,
		Emprestimos:   emprestimoService,
		Dashboard:     dashboardService,
		Migracoes:     migrator,
		VersaoSchema:  schemas.NewRegistry().CurrentVersion(),
		ChecagensObrigatorias: map[string]handlers.Checagem{
			"postgres": database.PingContext,
			"cache":    c.Ping,
		},
		ChecagensOpcionais: map[string]handlers.Checagem{
			"typesense": checagemBusca,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("servidor iniciado", zap.String("porta", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("erro ao iniciar servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("erro ao encerrar servidor", zap.Error(err))
	}
}
