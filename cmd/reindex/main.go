package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/config"
	"github.com/prefeitura-rio/app-ferramentas/internal/db"
	"github.com/prefeitura-rio/app-ferramentas/internal/logger"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
	"github.com/prefeitura-rio/app-ferramentas/internal/typesense"
)

type ReindexConfig struct {
	Workers      int
	DryRun       bool
	FerramentaID int64
}

type ReindexStats struct {
	Total     int64
	Processed int64
	Errors    int64
	StartTime time.Time
}

// Fonte lista as unidades do banco
type Fonte interface {
	Listar(ctx context.Context) ([]models.Ferramenta, error)
	BuscarPorID(ctx context.Context, id int64) (*models.Ferramenta, error)
}

// Indice recebe os documentos
type Indice interface {
	Indexar(ctx context.Context, f models.Ferramenta) error
}

type Reindexer struct {
	config *ReindexConfig
	fonte  Fonte
	indice Indice
	logger *zap.Logger
	stats  *ReindexStats
}

func main() {
	workers := flag.Int("workers", 4, "Workers paralelos")
	dryRun := flag.Bool("dry-run", false, "Simular sem alterar")
	ferramentaID := flag.Int64("id", 0, "Reindexar uma unidade específica")
	flag.Parse()

	cfg := config.LoadConfig()
	if !cfg.SearchEnabled() {
		log.Fatal("TYPESENSE_API_KEY não configurada")
	}

	zapLogger, err := logger.NewLogger(cfg.LogLevel, "console", cfg.ServiceName)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer zapLogger.Sync()

	database, err := db.New(cfg.DatabaseURL, *workers+1, *workers+1, time.Minute)
	if err != nil {
		zapLogger.Fatal("erro ao conectar no banco", zap.Error(err))
	}
	defer database.Close()

	ctx := context.Background()
	client := typesense.NewClient(cfg.TypesenseServerURL(), cfg.TypesenseAPIKey, cfg.TypesenseCollection, zapLogger)
	if err := client.EnsureCollection(ctx); err != nil {
		zapLogger.Fatal("erro ao preparar collection", zap.Error(err))
	}

	reindexer := NewReindexer(&ReindexConfig{
		Workers:      *workers,
		DryRun:       *dryRun,
		FerramentaID: *ferramentaID,
	}, store.NewFerramentaStore(database, zapLogger), client, zapLogger)

	if err := reindexer.Run(ctx); err != nil {
		zapLogger.Fatal("erro na reindexação", zap.Error(err))
	}
}

func NewReindexer(cfg *ReindexConfig, fonte Fonte, indice Indice, logger *zap.Logger) *Reindexer {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Reindexer{
		config: cfg,
		fonte:  fonte,
		indice: indice,
		logger: logger,
		stats:  &ReindexStats{StartTime: time.Now()},
	}
}

func (r *Reindexer) Run(ctx context.Context) error {
	r.logger.Info("iniciando reindexação",
		zap.Int("workers", r.config.Workers),
		zap.Bool("dry_run", r.config.DryRun),
	)

	if r.config.FerramentaID != 0 {
		f, err := r.fonte.BuscarPorID(ctx, r.config.FerramentaID)
		if err != nil {
			return fmt.Errorf("erro ao buscar ferramenta %d: %w", r.config.FerramentaID, err)
		}
		atomic.StoreInt64(&r.stats.Total, 1)
		if err := r.processar(ctx, *f); err != nil {
			return err
		}
		r.printStats()
		return nil
	}

	ferramentas, err := r.fonte.Listar(ctx)
	if err != nil {
		return fmt.Errorf("erro ao listar ferramentas: %w", err)
	}
	atomic.StoreInt64(&r.stats.Total, int64(len(ferramentas)))

	var wg sync.WaitGroup
	fila := make(chan models.Ferramenta, r.config.Workers*2)

	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for f := range fila {
				if err := r.processar(ctx, f); err != nil {
					r.logger.Warn("falha ao indexar", zap.Int("worker", workerID), zap.Error(err))
					atomic.AddInt64(&r.stats.Errors, 1)
				}
			}
		}(i)
	}

	for _, f := range ferramentas {
		fila <- f
	}
	close(fila)
	wg.Wait()

	r.printStats()
	return nil
}

func (r *Reindexer) processar(ctx context.Context, f models.Ferramenta) error {
	if r.config.DryRun {
		r.logger.Debug("[DRY-RUN] indexaria ferramenta", zap.Int64("ferramenta_id", f.ID))
		atomic.AddInt64(&r.stats.Processed, 1)
		return nil
	}

	if err := r.indice.Indexar(ctx, f); err != nil {
		return err
	}
	atomic.AddInt64(&r.stats.Processed, 1)
	return nil
}

func (r *Reindexer) printStats() {
	r.logger.Info("reindexação concluída",
		zap.Int64("total", atomic.LoadInt64(&r.stats.Total)),
		zap.Int64("processados", atomic.LoadInt64(&r.stats.Processed)),
		zap.Int64("erros", atomic.LoadInt64(&r.stats.Errors)),
		zap.Duration("duracao", time.Since(r.stats.StartTime)),
	)
}
