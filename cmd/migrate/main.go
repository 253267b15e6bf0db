// Command migrate aplica (ou desfaz) o schema do espelho de assinaturas
// sem subir a API. Usa DATABASE_DRIVER e DATABASE_URL.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/willjrcristo/kdpsuite-api/internal/config"
	"github.com/willjrcristo/kdpsuite-api/internal/database"
)

func main() {
	down := flag.Bool("down", false, "desfaz a última migração em vez de aplicar as pendentes")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao carregar a configuração", "error", err)
		os.Exit(1)
	}
	if !cfg.DatabaseConfigured() {
		slog.Error("DATABASE_URL não configurado")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		slog.Error("Erro ao conectar no banco", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *down {
		err = database.Rollback(db, cfg.Database.Driver)
	} else {
		err = database.Migrate(db, cfg.Database.Driver)
	}
	if err != nil {
		slog.Error("Erro ao migrar", "error", err)
		os.Exit(1)
	}

	version, dirty, err := database.Version(db, cfg.Database.Driver)
	if err != nil {
		slog.Error("Erro ao ler a versão do schema", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Schema atualizado", "version", version, "dirty", dirty)
}
