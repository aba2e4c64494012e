package entities

import (
	"github.com/google/uuid"
)

const (
	StorageTypeDigital   = "DIGITAL"
	StorageTypePhysical  = "PHYSICAL"
	StorageTypeArchive   = "ARCHIVE"
	StorageTypeLexoffice = "LEXOFFICE"
)

type StorageLocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Label     string    `json:"label"`
	Type      string    `json:"type"` // "DIGITAL", "PHYSICAL", "ARCHIVE", "LEXOFFICE"
	IsDefault bool      `json:"is_default"`

	Timestamp
}
