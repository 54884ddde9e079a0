package template

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
)

// ErrNotFound is returned when no usable template exists for a document
// type. Callers fall back to the built-in renderer on it.
var ErrNotFound = errors.New("template not found")

// Store persists document templates.
type Store interface {
	// GetForType returns the template to use for the given document type,
	// preferring the default one. ErrNotFound when none has a layout.
	GetForType(ctx context.Context, docType string) (*models.Template, error)
	// Get returns a template by id, ErrNotFound when absent.
	Get(ctx context.Context, id string) (*models.Template, error)
	// List returns all templates, defaults first.
	List(ctx context.Context) ([]models.Template, error)
	// Save validates and upserts a template, assigning an id when empty.
	Save(ctx context.Context, tpl *models.Template) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the database-backed template store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetForType(ctx context.Context, docType string) (*models.Template, error) {
	if !models.IsAllowedDocumentType(docType) {
		return nil, fmt.Errorf("unknown document type %q", docType)
	}
	var tpl models.Template
	err := s.db.WithContext(ctx).
		Where("document_type = ? AND layout_data <> ''", docType).
		Order("is_default DESC, updated_at DESC").
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *gormStore) Get(ctx context.Context, id string) (*models.Template, error) {
	var tpl models.Template
	err := s.db.WithContext(ctx).First(&tpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *gormStore) List(ctx context.Context) ([]models.Template, error) {
	var tpls []models.Template
	err := s.db.WithContext(ctx).
		Order("document_type ASC, is_default DESC, name ASC").
		Find(&tpls).Error
	return tpls, err
}

func (s *gormStore) Save(ctx context.Context, tpl *models.Template) error {
	if !models.IsAllowedDocumentType(tpl.DocumentType) {
		return fmt.Errorf("unknown document type %q", tpl.DocumentType)
	}
	if tpl.Name == "" {
		return errors.New("template name is required")
	}
	if tpl.LayoutData != "" {
		if _, err := ParseLayout(tpl.LayoutData); err != nil {
			return err
		}
	}
	if tpl.ID == "" {
		tpl.ID = models.NewID()
	}
	return s.db.WithContext(ctx).Save(tpl).Error
}
