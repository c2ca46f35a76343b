package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/foodai/festival-guide/backend/internal/models"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Source selects where the catalog is read from at startup.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceFile     Source = "file"
	SourceDatabase Source = "database"
)

// Options configures Load.
type Options struct {
	Source Source
	Path   string   // SourceFile
	DB     *gorm.DB // SourceDatabase
}

// document is the YAML layout: a booth list plus menus keyed by booth ID.
type document struct {
	Booths []models.Booth               `yaml:"booths"`
	Menus  map[string][]models.MenuItem `yaml:"menus"`
}

// Parse decodes a YAML catalog. Menu items inherit the booth ID of the
// menu they are listed under. Entries are returned in file order and are
// not validated; pass them to New.
func Parse(data []byte) ([]models.Booth, []models.MenuItem, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	booths := doc.Booths
	var items []models.MenuItem
	listed := make(map[string]bool, len(booths))
	for i := range booths {
		booths[i].Position = i
		listed[booths[i].ID] = true
		items = appendMenu(items, booths[i].ID, doc.Menus[booths[i].ID])
	}
	// menus whose booth is missing are kept so New can report them
	for boothID, menu := range doc.Menus {
		if !listed[boothID] {
			items = appendMenu(items, boothID, menu)
		}
	}
	return booths, items, nil
}

func appendMenu(items []models.MenuItem, boothID string, menu []models.MenuItem) []models.MenuItem {
	for _, item := range menu {
		if item.BoothID == "" {
			item.BoothID = boothID
		}
		item.Position = len(items)
		items = append(items, item)
	}
	return items
}

// Embedded returns the entries of the built-in festival catalog.
func Embedded() ([]models.Booth, []models.MenuItem, error) {
	return Parse(embeddedCatalog)
}

// ReadFile returns the entries of a YAML catalog on disk.
func ReadFile(path string) ([]models.Booth, []models.MenuItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// ReadDB returns the entries stored in the booths and menu_items tables,
// in their seeded order.
func ReadDB(ctx context.Context, db *gorm.DB) ([]models.Booth, []models.MenuItem, error) {
	var booths []models.Booth
	if err := db.WithContext(ctx).Order("position, id").Find(&booths).Error; err != nil {
		return nil, nil, fmt.Errorf("query booths: %w", err)
	}
	var items []models.MenuItem
	if err := db.WithContext(ctx).Order("position, id").Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("query menu items: %w", err)
	}
	return booths, items, nil
}

// Load reads the configured source and builds the catalog.
func Load(ctx context.Context, opts Options, logger *zap.Logger) (*Catalog, error) {
	var (
		booths []models.Booth
		items  []models.MenuItem
		err    error
	)

	switch opts.Source {
	case SourceEmbedded, "":
		booths, items, err = Embedded()
	case SourceFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("catalog source %q requires a path", opts.Source)
		}
		booths, items, err = ReadFile(opts.Path)
	case SourceDatabase:
		if opts.DB == nil {
			return nil, fmt.Errorf("catalog source %q requires a database", opts.Source)
		}
		booths, items, err = ReadDB(ctx, opts.DB)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", opts.Source)
	}
	if err != nil {
		return nil, err
	}

	return New(booths, items, logger), nil
}
