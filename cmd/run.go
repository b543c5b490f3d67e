package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HoangNamHai/pmquest/internal/app"
	"github.com/HoangNamHai/pmquest/internal/config"
	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/store"
)

// runApp opens the store, loads the catalog, and launches the TUI. lessonID
// is optional; when set the app starts straight into that lesson.
func runApp(cmd *cobra.Command, lessonID string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	catalog, err := loadCatalog(cmd, cfg)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Catalog:  catalog,
		Attempts: st.Attempts(),
		Config:   cfg,
		LessonID: lessonID,
	})
}

// loadCatalog resolves the contentset: the --content flag wins, then the
// config file's content_dir, then the content embedded in the binary.
func loadCatalog(cmd *cobra.Command, cfg config.Config) (*content.Catalog, error) {
	dir, _ := cmd.Flags().GetString("content")
	if dir == "" {
		dir = cfg.ContentDir
	}
	if dir == "" {
		return content.LoadBuiltin()
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	return content.LoadCatalog(os.DirFS(dir))
}
