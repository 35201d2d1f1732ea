package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Entity struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`
	// CreatedAt is set on insert.
	CreatedAt time.Time `json:"created_at"`
}

type Keyed[T comparable] struct {
	Key T `gorm:"primary_key" json:"key"`
}

// Widget is a catalog item.
type Widget struct {
	Entity   `gorm:",embedded" json:",inline"`
	GadgetID uuid.UUID `gorm:"type:uuid;" json:"gadget_id"`
	Name     string    `gorm:"type:text;" json:"name"`
	Category int       `json:"category"`
	Price    *float64  `json:"price"` // optional
	secret   string
}

type Widgets []*Widget

type Gadget struct {
	Entity  `gorm:",embedded" json:",inline" dto:"-"`
	Widgets Widgets           `gorm:"foreignkey:GadgetID" json:"widgets"`
	Labels  map[string]string `json:"labels"`
	Blob    []byte            `json:"blob"`
	Skipped string            `json:"-"`
}

type Part struct {
	Keyed[int64] `json:",inline"`
	Ref          string `json:"ref"`
	Audit        Audit  `gorm:"embedded"`
	// Legacy Deprecated: use Ref.
	Legacy   string `json:"legacy"`
	Internal string `json:"internal" dto:"internal"`
}

// OldPart
// Deprecated: use Part.
type OldPart struct {
	Ref string `json:"ref"`
}

type Status int

type Audit struct {
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
}
