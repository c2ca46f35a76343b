// Package ingest synthesizes draft menu items from uploaded menu files.
// It stands in for an OCR/NLP pipeline: the drafts are plausible, not read
// from the file contents.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/foodai/festival-guide/backend/internal/models"
)

var ErrUnsupportedFile = errors.New("file type not allowed")

var allowedExt = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

// FileMeta is what the synthesizer knows about an upload.
type FileMeta struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// IsImage reports whether the upload is a picture rather than a PDF.
func (f FileMeta) IsImage() bool {
	if strings.HasPrefix(f.ContentType, "image/") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	return ext != ".pdf" && allowedExt[ext]
}

// ValidateFile accepts images and PDFs, by content type or extension.
func ValidateFile(f FileMeta) error {
	if strings.HasPrefix(f.ContentType, "image/") || f.ContentType == "application/pdf" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	if ext == "" {
		return fmt.Errorf("%s: file extension missing: %w", f.Name, ErrUnsupportedFile)
	}
	if !allowedExt[ext] {
		return fmt.Errorf("%s: %w", f.Name, ErrUnsupportedFile)
	}
	return nil
}

// Draft is a synthesized menu item awaiting review.
type Draft struct {
	BoothCode         string   `json:"boothCode" validate:"required"`
	Name              string   `json:"name" validate:"required,max=60"`
	Price             float64  `json:"price" validate:"gte=0"`
	Spiciness         int      `json:"spiciness" validate:"gte=0,lte=4"`
	HalalCertified    bool     `json:"halalCertified"`
	ContainsPork      bool     `json:"containsPork"`
	ContainsBeef      bool     `json:"containsBeef"`
	ContainsAlcohol   bool     `json:"containsAlcohol"`
	ContainsShellfish bool     `json:"containsShellfish"`
	Allergens         []string `json:"allergens"`
	Confidence        float64  `json:"confidence" validate:"gte=0,lte=1"`
	SourceFile        string   `json:"sourceFile,omitempty"`
	ImageURL          string   `json:"imageUrl,omitempty"`
}

var validate = validator.New()

// ToMenuItem converts a reviewed draft into a catalog menu item. The item
// must pass the same validation the catalog applies.
func (d Draft) ToMenuItem(id string) (models.MenuItem, error) {
	item := models.MenuItem{
		ID:                id,
		BoothID:           strings.ToUpper(strings.TrimSpace(d.BoothCode)),
		Name:              strings.TrimSpace(d.Name),
		Price:             d.Price,
		Spiciness:         d.Spiciness,
		HalalCertified:    d.HalalCertified,
		ContainsPork:      d.ContainsPork,
		ContainsBeef:      d.ContainsBeef,
		ContainsAlcohol:   d.ContainsAlcohol,
		ContainsShellfish: d.ContainsShellfish,
		Allergens:         allergenTags(d.Allergens),
		ImageURL:          d.ImageURL,
	}
	if err := validate.Struct(item); err != nil {
		return models.MenuItem{}, fmt.Errorf("invalid menu item: %w", err)
	}
	return item, nil
}

func allergenTags(in []string) models.StringArray {
	out := make(models.StringArray, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !out.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// Source produces drafts for a batch of uploads.
type Source interface {
	Drafts(files []FileMeta, defaultBooth string) []Draft
}
