package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{
		&Representative{},
		&Brand{},
		&FrameType{},
		&FrameColor{},
		&GlassType{},
		&GridStyle{},
		&GridSize{},
		&ProductConfig{},
		&Disclaimer{},
		&Customer{},
		&ContractDisclaimer{},
		&Window{},
	}
}

func (m *Representative) BeforeCreate(*gorm.DB) error     { ensureID(&m.ID); return nil }
func (m *Customer) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *Window) BeforeCreate(*gorm.DB) error             { ensureID(&m.ID); return nil }
func (m *Brand) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *FrameType) BeforeCreate(*gorm.DB) error          { ensureID(&m.ID); return nil }
func (m *FrameColor) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *GlassType) BeforeCreate(*gorm.DB) error          { ensureID(&m.ID); return nil }
func (m *GridStyle) BeforeCreate(*gorm.DB) error          { ensureID(&m.ID); return nil }
func (m *GridSize) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *ProductConfig) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
func (m *Disclaimer) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *ContractDisclaimer) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
