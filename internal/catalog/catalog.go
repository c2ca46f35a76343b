// Package catalog holds the festival's booths and menus. A Catalog is
// immutable once built and safe for concurrent reads.
package catalog

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foodai/festival-guide/backend/internal/models"
)

var (
	ErrBoothNotFound = errors.New("booth not found")
	ErrMenuNotFound  = errors.New("menu item not found")
)

type Catalog struct {
	booths   []models.Booth
	boothIdx map[string]int
	menus    map[string][]models.MenuItem
	items    []models.MenuItem
}

// New validates the entries and builds a catalog. Entries that fail
// validation, repeat an ID, or reference an unknown booth are dropped with
// a warning. Booth aggregate flags are widened to cover their menu items.
func New(booths []models.Booth, items []models.MenuItem, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := validator.New()

	c := &Catalog{
		boothIdx: make(map[string]int, len(booths)),
		menus:    make(map[string][]models.MenuItem, len(booths)),
	}

	for _, b := range booths {
		b.Cuisines = normalizeTags(b.Cuisines)
		if err := validate.Struct(b); err != nil {
			logger.Warn("dropping invalid booth", zap.String("booth_id", b.ID), zap.Error(err))
			continue
		}
		if _, dup := c.boothIdx[b.ID]; dup {
			logger.Warn("dropping duplicate booth", zap.String("booth_id", b.ID))
			continue
		}
		b.Position = len(c.booths)
		c.boothIdx[b.ID] = len(c.booths)
		c.booths = append(c.booths, b)
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		// tags are compared lowercased, so validate them in that form
		item.Allergens = normalizeTags(item.Allergens)
		if err := validate.Struct(item); err != nil {
			logger.Warn("dropping invalid menu item",
				zap.String("menu_id", item.ID), zap.String("booth_id", item.BoothID), zap.Error(err))
			continue
		}
		idx, ok := c.boothIdx[item.BoothID]
		if !ok {
			logger.Warn("dropping menu item for unknown booth",
				zap.String("menu_id", item.ID), zap.String("booth_id", item.BoothID))
			continue
		}
		if _, dup := seen[item.ID]; dup {
			logger.Warn("dropping duplicate menu item", zap.String("menu_id", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}
		c.menus[item.BoothID] = append(c.menus[item.BoothID], item)
		widen(&c.booths[idx], item)
	}

	// items are flattened in booth order so recommendation ties follow the map
	grouped := c.menus
	c.menus = make(map[string][]models.MenuItem, len(c.booths))
	for _, b := range c.booths {
		for _, item := range grouped[b.ID] {
			item.Position = len(c.items)
			c.items = append(c.items, item)
			c.menus[b.ID] = append(c.menus[b.ID], item)
		}
	}

	logger.Info("catalog loaded", zap.Int("booths", len(c.booths)), zap.Int("menu_items", len(c.items)))
	return c
}

// widen folds an item's compliance flags and spiciness into its booth.
func widen(b *models.Booth, item models.MenuItem) {
	b.HasPork = b.HasPork || item.ContainsPork
	b.HasAlcohol = b.HasAlcohol || item.ContainsAlcohol
	b.HasBeef = b.HasBeef || item.ContainsBeef
	b.HasShellfish = b.HasShellfish || item.ContainsShellfish
	if item.Spiciness > b.SpicinessMax {
		b.SpicinessMax = item.Spiciness
	}
}

func normalizeTags(in models.StringArray) models.StringArray {
	out := make(models.StringArray, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || out.Contains(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Booths returns every booth in catalog order.
func (c *Catalog) Booths() []models.Booth {
	out := make([]models.Booth, len(c.booths))
	copy(out, c.booths)
	return out
}

func (c *Catalog) Booth(id string) (models.Booth, error) {
	idx, ok := c.boothIdx[id]
	if !ok {
		return models.Booth{}, ErrBoothNotFound
	}
	return c.booths[idx], nil
}

// Menu returns the booth's items in menu order.
func (c *Catalog) Menu(boothID string) ([]models.MenuItem, error) {
	if _, ok := c.boothIdx[boothID]; !ok {
		return nil, ErrBoothNotFound
	}
	menu := c.menus[boothID]
	out := make([]models.MenuItem, len(menu))
	copy(out, menu)
	return out, nil
}

// MenuItem looks up one item on a booth's menu.
func (c *Catalog) MenuItem(boothID, menuID string) (models.MenuItem, error) {
	if _, ok := c.boothIdx[boothID]; !ok {
		return models.MenuItem{}, ErrBoothNotFound
	}
	for _, item := range c.menus[boothID] {
		if item.ID == menuID {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrMenuNotFound
}

// Items returns every menu item, booth by booth.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) BoothCount() int { return len(c.booths) }

func (c *Catalog) ItemCount() int { return len(c.items) }
