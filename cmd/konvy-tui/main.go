// Command konvy-tui is the terminal storefront.
package main

import (
	"fmt"
	"os"

	"konvyshop/config"
	"konvyshop/models"
	"konvyshop/preview"
	"konvyshop/shopapi"
	"konvyshop/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	// Log lines would tear the terminal UI apart
	logger.SetLogLevel("error")

	if err := models.InitDB(cfg.Activity.DBPath); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize activity log:", err)
		os.Exit(1)
	}
	defer models.CloseDB()

	shop, err := shopapi.NewClient(shopapi.Options{
		BaseURL:        cfg.Shop.BaseURL,
		Timeout:        cfg.Shop.Timeout,
		RequestsPerSec: cfg.Shop.RequestsPerSec,
		Burst:          cfg.Shop.Burst,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create shop client:", err)
		os.Exit(1)
	}

	model := tui.New(tui.Options{
		Backend:  shop,
		Catalog:  models.NewCatalog(),
		Fetcher:  shopapi.NewCatalogClient(cfg.Shop.CatalogURL, cfg.Shop.Timeout),
		Prober:   preview.NewHTTPProber(),
		Username: cfg.TUI.Username,
		Password: cfg.TUI.Password,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Terminal storefront failed:", err)
		os.Exit(1)
	}
}
