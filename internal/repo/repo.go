// Package repo exposes typed views over the record store. Each
// repository owns one logical record and rewrites it wholesale on
// every mutation.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
)

func loadRecord(ctx context.Context, st store.Store, key string, v interface{}) (bool, error) {
	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveRecord(ctx context.Context, st store.Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

type Catalog struct {
	st store.Store
}

func NewCatalog(st store.Store) *Catalog {
	return &Catalog{st: st}
}

func (c *Catalog) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if _, err := loadRecord(ctx, c.st, store.KeyServices, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// FindByID returns nil without error when no service matches.
func (c *Catalog) FindByID(ctx context.Context, id string) (*models.Service, error) {
	services, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return nil, nil
}

func (c *Catalog) Save(ctx context.Context, services []models.Service) error {
	return saveRecord(ctx, c.st, store.KeyServices, services)
}

type Gallery struct {
	st store.Store
}

func NewGallery(st store.Store) *Gallery {
	return &Gallery{st: st}
}

func (g *Gallery) List(ctx context.Context) ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	if _, err := loadRecord(ctx, g.st, store.KeyGallery, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *Gallery) Save(ctx context.Context, items []models.GalleryItem) error {
	return saveRecord(ctx, g.st, store.KeyGallery, items)
}

type Hours struct {
	st       store.Store
	defaults models.BusinessHours
}

func NewHours(st store.Store, defaults models.BusinessHours) *Hours {
	return &Hours{st: st, defaults: defaults}
}

// Get falls back to the configured default week when no hours record
// has been written yet.
func (h *Hours) Get(ctx context.Context) (models.BusinessHours, error) {
	var hours models.BusinessHours
	ok, err := loadRecord(ctx, h.st, store.KeyHours, &hours)
	if err != nil {
		return nil, err
	}
	if !ok {
		return h.defaults, nil
	}
	return hours, nil
}

func (h *Hours) Put(ctx context.Context, hours models.BusinessHours) error {
	return saveRecord(ctx, h.st, store.KeyHours, hours)
}

type Brand struct {
	st       store.Store
	defaults models.BrandConfig
}

func NewBrand(st store.Store, defaults models.BrandConfig) *Brand {
	return &Brand{st: st, defaults: defaults}
}

func (b *Brand) Get(ctx context.Context) (models.BrandConfig, error) {
	var cfg models.BrandConfig
	ok, err := loadRecord(ctx, b.st, store.KeyBrand, &cfg)
	if err != nil {
		return models.BrandConfig{}, err
	}
	if !ok {
		return b.defaults, nil
	}
	return cfg, nil
}

func (b *Brand) Put(ctx context.Context, cfg models.BrandConfig) error {
	return saveRecord(ctx, b.st, store.KeyBrand, cfg)
}

// Admins is the allow-list of administrator emails. The master admin
// is implicitly authorized and never stored or removed.
type Admins struct {
	st          store.Store
	masterEmail string
}

func NewAdmins(st store.Store, masterEmail string) *Admins {
	return &Admins{st: st, masterEmail: strings.ToLower(strings.TrimSpace(masterEmail))}
}

func (a *Admins) MasterEmail() string {
	return a.masterEmail
}

func (a *Admins) List(ctx context.Context) ([]models.AuthorizedAdmin, error) {
	var admins []models.AuthorizedAdmin
	if _, err := loadRecord(ctx, a.st, store.KeyAdmins, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (a *Admins) Save(ctx context.Context, admins []models.AuthorizedAdmin) error {
	return saveRecord(ctx, a.st, store.KeyAdmins, admins)
}

func (a *Admins) IsAuthorized(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	if email == a.masterEmail {
		return true, nil
	}
	admins, err := a.List(ctx)
	if err != nil {
		return false, err
	}
	for _, admin := range admins {
		if strings.ToLower(admin.Email) == email {
			return true, nil
		}
	}
	return false, nil
}
