package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/config"
	"github.com/prefeitura-rio/app-ferramentas/internal/db"
	"github.com/prefeitura-rio/app-ferramentas/internal/logger"
	"github.com/prefeitura-rio/app-ferramentas/internal/migration"
	"github.com/prefeitura-rio/app-ferramentas/internal/migration/schemas"
	"github.com/prefeitura-rio/app-ferramentas/internal/typesense"
)

var (
	showSQL    = flag.Bool("sql", false, "Mostra o SQL de cada migração no comando schemas")
	jsonOutput = flag.Bool("json", false, "Saída em formato JSON")
	timeout    = flag.Duration("timeout", 10*time.Minute, "Tempo máximo da operação")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Uso: %s <comando> [opções]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Comandos disponíveis:\n")
		fmt.Fprintf(os.Stderr, "  up        Aplica as migrações pendentes do PostgreSQL\n")
		fmt.Fprintf(os.Stderr, "  status    Lista as migrações aplicadas e pendentes\n")
		fmt.Fprintf(os.Stderr, "  schemas   Lista as migrações registradas no código\n")
		fmt.Fprintf(os.Stderr, "  index     Cria a collection de busca no Typesense se não existir\n")
		fmt.Fprintf(os.Stderr, "\nOpções:\n")
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	command := os.Args[1]
	os.Args = append(os.Args[:1], os.Args[2:]...)
	flag.Parse()

	cfg := config.LoadConfig()
	zapLogger, err := logger.NewLogger(cfg.LogLevel, "console", cfg.ServiceName)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	registry := schemas.NewRegistry()

	switch command {
	case "up":
		cmdUp(ctx, novoMigrator(cfg, registry, zapLogger))
	case "status":
		cmdStatus(ctx, novoMigrator(cfg, registry, zapLogger))
	case "schemas":
		cmdSchemas(registry)
	case "index":
		cmdIndex(ctx, cfg, zapLogger)
	default:
		fmt.Fprintf(os.Stderr, "Comando desconhecido: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func novoMigrator(cfg *config.Config, registry *schemas.Registry, zapLogger *zap.Logger) *migration.Migrator {
	database, err := db.New(cfg.DatabaseURL, 2, 2, time.Minute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao conectar no banco: %v\n", err)
		os.Exit(1)
	}
	return migration.NewMigrator(database, registry, zapLogger)
}

func cmdUp(ctx context.Context, m *migration.Migrator) {
	fmt.Println("🚀 Aplicando migrações pendentes")

	feitas, err := m.Up(ctx)
	if *jsonOutput {
		printJSON(map[string]interface{}{"aplicadas": feitas, "erro": errString(err)})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao aplicar migrações: %v\n", err)
		os.Exit(1)
	}
	if *jsonOutput {
		return
	}

	if len(feitas) == 0 {
		fmt.Println("\n✅ Banco já está na versão mais recente")
		return
	}
	fmt.Println("\n✅ Migrações aplicadas:")
	for _, v := range feitas {
		fmt.Printf("   - %s\n", v)
	}
}

func cmdStatus(ctx context.Context, m *migration.Migrator) {
	status, err := m.Status(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao obter status: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(status)
		return
	}

	fmt.Println("📊 Status das migrações")
	pendentes := 0
	for _, s := range status {
		fmt.Printf("   %s %s - %s", formatStatus(s.Aplicada), s.Versao, s.Descricao)
		if s.AplicadaEm != nil {
			fmt.Printf(" (%s)", s.AplicadaEm.Format("02/01/2006 15:04:05"))
		}
		fmt.Println()
		if !s.Aplicada {
			pendentes++
		}
	}
	if pendentes > 0 {
		fmt.Printf("\n⚠️  %d migração(ões) pendente(s): escritas da API ficam bloqueadas até o up\n", pendentes)
	}
}

func cmdSchemas(registry *schemas.Registry) {
	versoes := registry.ListVersions()

	if *jsonOutput {
		printJSON(map[string]interface{}{
			"versao_atual": registry.CurrentVersion(),
			"versoes":      versoes,
		})
		return
	}

	fmt.Println("📋 Migrações registradas")
	for _, v := range versoes {
		mig, err := registry.Get(v)
		if err != nil {
			continue
		}
		marcador := "  "
		if v == registry.CurrentVersion() {
			marcador = "➜ "
		}
		fmt.Printf("   %s%s - %s\n", marcador, mig.Versao, mig.Descricao)
		if *showSQL {
			fmt.Printf("%s\n\n", mig.SQL)
		}
	}
}

func cmdIndex(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) {
	if !cfg.SearchEnabled() {
		fmt.Fprintln(os.Stderr, "❌ TYPESENSE_API_KEY não configurada")
		os.Exit(1)
	}

	client := typesense.NewClient(cfg.TypesenseServerURL(), cfg.TypesenseAPIKey, cfg.TypesenseCollection, zapLogger)
	if err := client.EnsureCollection(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Erro ao preparar collection: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Collection %s pronta. Rode o reindex para popular.\n", cfg.TypesenseCollection)
}

func formatStatus(aplicada bool) string {
	if aplicada {
		return "🟢"
	}
	return "🟡"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Erro ao serializar JSON: %v", err)
	}
	fmt.Println(string(data))
}
