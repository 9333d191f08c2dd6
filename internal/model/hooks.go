package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BeforeCreate hooks assign a uuid when the caller did not. Postgres would do
// this via gen_random_uuid(), but the sqlite driver used in tests has no such
// default, so the ID is generated application-side when absent.

func (p *Perfil) BeforeCreate(*gorm.DB) error          { ensureID(&p.ID); return nil }
func (p *PermisoModulo) BeforeCreate(*gorm.DB) error   { ensureID(&p.ID); return nil }
func (p *PermisoFundo) BeforeCreate(*gorm.DB) error    { ensureID(&p.ID); return nil }
func (f *Fundo) BeforeCreate(*gorm.DB) error           { ensureID(&f.ID); return nil }
func (l *Lote) BeforeCreate(*gorm.DB) error            { ensureID(&l.ID); return nil }
func (c *Camion) BeforeCreate(*gorm.DB) error          { ensureID(&c.ID); return nil }
func (g *Guia) BeforeCreate(*gorm.DB) error            { ensureID(&g.ID); return nil }
func (g *GuiaLote) BeforeCreate(*gorm.DB) error        { ensureID(&g.ID); return nil }
func (a *AcopioRecepcion) BeforeCreate(*gorm.DB) error { ensureID(&a.ID); return nil }
func (a *AcopioPallet) BeforeCreate(*gorm.DB) error    { ensureID(&a.ID); return nil }
func (a *AcopioCarga) BeforeCreate(*gorm.DB) error     { ensureID(&a.ID); return nil }
func (p *Packing) BeforeCreate(*gorm.DB) error         { ensureID(&p.ID); return nil }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
