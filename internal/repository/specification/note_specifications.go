package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"notesync/pkg/view"
)

// BySection filters notes or notebooks by their home section
type BySection struct {
	Section view.Section
}

func (s BySection) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("section = ?", string(s.Section))
}

// ByNotebookID filters notes belonging to one notebook
type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

// WithoutNotebook filters notes that live directly under a section
type WithoutNotebook struct{}

func (s WithoutNotebook) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id IS NULL")
}

// IsFavorite filters notes flagged as favorites
type IsFavorite struct{}

func (s IsFavorite) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_favorite = ?", true)
}

// IsLocked filters notes flagged as locked
type IsLocked struct{}

func (s IsLocked) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_locked = ?", true)
}
