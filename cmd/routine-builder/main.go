package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xYup1terx/routine-builder/internal/catalog"
	"github.com/xYup1terx/routine-builder/internal/cli"
	"github.com/xYup1terx/routine-builder/internal/compose"
	"github.com/xYup1terx/routine-builder/internal/conversation"
	"github.com/xYup1terx/routine-builder/internal/db"
	"github.com/xYup1terx/routine-builder/internal/llm"
	"github.com/xYup1terx/routine-builder/internal/repository"
	"github.com/xYup1terx/routine-builder/internal/selection"
	"github.com/xYup1terx/routine-builder/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.routine-builder/state.db
	dbPath := os.Getenv("ROUTINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".routine-builder", "state.db")
	}

	// Determine catalog location: env var or a local products.json.
	catalogLoc := os.Getenv("ROUTINE_CATALOG_URL")
	if catalogLoc == "" {
		catalogLoc = "./products.json"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	stateRepo := repository.NewSQLiteStateRepo(database)
	conv := conversation.NewStore(stateRepo, compose.DefaultSystemDirective)
	sel := selection.NewStore(stateRepo)

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewHTTPClient(llmCfg, observer)

	app := &cli.App{
		Catalog:    catalog.NewSource(catalogLoc),
		Controller: session.NewController(conv, sel, client, os.Stderr),
		Out:        os.Stdout,
	}

	return cli.NewRootCmd(app).Execute()
}
