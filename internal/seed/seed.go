// Package seed holds the initial salon dataset and writes it into the
// record store on first run. Existing records are never overwritten.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
)

func DefaultHours() models.BusinessHours {
	weekday := models.DaySchedule{Open: "09:00", Close: "20:00", IsOpen: true}
	return models.BusinessHours{
		0: {Open: "09:00", Close: "20:00", IsOpen: false},
		1: weekday,
		2: weekday,
		3: weekday,
		4: weekday,
		5: weekday,
		6: {Open: "09:00", Close: "14:00", IsOpen: true},
	}
}

func DefaultBrand() models.BrandConfig {
	return models.BrandConfig{
		SalonName:       "MAR TOME ESTILISTA",
		Address:         "Barrio de Salamanca, Madrid",
		WhatsApp:        "34600000000",
		HeroTitle:       "Domina Tu Imagen",
		HeroSubtitle:    "Estética Premium",
		HeroDescription: "Artesanía capilar de vanguardia. Experimenta un servicio curado bajo tonos de sofisticación.",
		AboutTitle:      "Artesanía y Estilo",
		AboutText: "En MarTome Estilista, no solo cortamos el cabello; esculpimos identidades. " +
			"Con años de experiencia en el sector del lujo, nuestro equipo combina técnicas clásicas " +
			"con tendencias globales para ofrecerte una experiencia transformadora.",
		ServicesTitle:     "Catálogo de Servicios",
		AITitle:           "IA Style Advisor",
		AIDescription:     "Nuestra inteligencia artificial analiza tu descripción o tu estructura ósea para recomendarte el corte que definirá tu presencia.",
		GalleryTitle:      "Inspiración Digital",
		FooterDescription: "Liderando la vanguardia estética en Madrid.",
		Testimonials: []models.Testimonial{
			{ID: "1", Author: "Elena R.", Content: "El mejor trato que he recibido nunca. Mar entendió exactamente lo que buscaba.", Rating: 5},
			{ID: "2", Author: "Javier M.", Content: "Ambiente exclusivo y profesionalidad absoluta. Volveré sin duda.", Rating: 5},
		},
	}
}

func Services() []models.Service {
	return []models.Service{
		{ID: "peinado", Name: "Peinado", Description: "Estilismo y peinado personalizado para cualquier ocasión, desde looks diarios hasta eventos.", Price: 14, DurationMinutes: 30, ImageURL: "https://images.unsplash.com/photo-1560869713-7d0a29430863?auto=format&fit=crop&q=80&w=400", Category: models.CategoryHair},
		{ID: "tinte", Name: "Tinte", Description: "Coloración profesional con productos de alta calidad para un brillo y cobertura total.", Price: 24, DurationMinutes: 60, ImageURL: "https://images.unsplash.com/photo-1562322140-8baeececf3df?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
		{ID: "mechas", Name: "Mechas", Description: "Técnica de iluminación capilar completa para aportar dimensión y luminosidad a tu melena.", Price: 50, DurationMinutes: 90, ImageURL: "https://images.unsplash.com/photo-1595476108010-b4d1f102b1b1?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
		{ID: "corte", Name: "Corte", Description: "Corte de tendencia adaptado a tus facciones, estilo personal y tipo de cabello.", Price: 14, DurationMinutes: 30, ImageURL: "https://images.unsplash.com/photo-1580618672591-eb180b1a973f?auto=format&fit=crop&q=80&w=400", Category: models.CategoryHair},
		{ID: "media-mechas", Name: "Media Cabeza Mechas", Description: "Iluminación parcial estratégica para un aspecto natural y refrescante.", Price: 25, DurationMinutes: 60, ImageURL: "https://images.unsplash.com/photo-1605497788044-5a32c7078486?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
		{ID: "matiz", Name: "Matiz", Description: "Ajuste de tono para perfeccionar el color y eliminar reflejos no deseados entre servicios.", Price: 20, DurationMinutes: 30, ImageURL: "https://images.unsplash.com/photo-1522337660859-02fbefca4702?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
		{ID: "recogido", Name: "Recogido", Description: "Peinado elaborado ideal para bodas, galas y celebraciones especiales de alto impacto.", Price: 40, DurationMinutes: 60, ImageURL: "https://images.unsplash.com/photo-1519415510271-4197a7d26441?auto=format&fit=crop&q=80&w=400", Category: models.CategoryHair},
		{ID: "semirrecogido", Name: "Semirrecogido", Description: "Equilibrio perfecto entre elegancia y naturalidad para un look sofisticado pero relajado.", Price: 20, DurationMinutes: 45, ImageURL: "https://images.unsplash.com/photo-1492106087820-71f1a00d2b11?auto=format&fit=crop&q=80&w=400", Category: models.CategoryHair},
		{ID: "alisado-organico", Name: "Alisado Orgánico", Description: "Tratamiento alisador de larga duración sin químicos agresivos. Cabello liso, sano y brillante.", Price: 140, DurationMinutes: 180, ImageURL: "https://images.unsplash.com/photo-1522337360788-8b13df7727c6?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
		{ID: "tratamiento", Name: "Tratamiento", Description: "Cuidado intensivo de hidratación o reparación personalizado según las necesidades de tu cabello.", Price: 25, DurationMinutes: 30, ImageURL: "https://images.unsplash.com/photo-1516975080664-ed2fc6a32937?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
		{ID: "decoloracion", Name: "Decoloración Completa", Description: "Aclarado total profesional para alcanzar bases rubias platino o preparar para colores fantasía.", Price: 50, DurationMinutes: 120, ImageURL: "https://images.unsplash.com/photo-1620331311520-246422ff82f9?auto=format&fit=crop&q=80&w=400", Category: models.CategoryOther},
	}
}

func GalleryItems() []models.GalleryItem {
	return []models.GalleryItem{
		{ID: "1", ImageURL: "https://picsum.photos/seed/style1/800/800", Title: "Degradado Ejecutivo"},
		{ID: "2", ImageURL: "https://picsum.photos/seed/style2/800/800", Title: "Textura Urbana"},
		{ID: "3", ImageURL: "https://picsum.photos/seed/style3/800/800", Title: "Tupé Clásico"},
		{ID: "4", ImageURL: "https://picsum.photos/seed/style4/800/800", Title: "Barba de Autor"},
		{ID: "5", ImageURL: "https://picsum.photos/seed/style5/800/800", Title: "Crop Moderno"},
		{ID: "6", ImageURL: "https://picsum.photos/seed/style6/800/800", Title: "Raya al Lado Vintage"},
	}
}

func writeIfAbsent(ctx context.Context, st store.Store, log *slog.Logger, key string, v interface{}) error {
	_, ok, err := st.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("seed check %s: %w", key, err)
	}
	if ok {
		log.Info("seed: record exists, skipping", slog.String("key", key))
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("seed encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("seed write %s: %w", key, err)
	}
	log.Info("seed: record written", slog.String("key", key))
	return nil
}

// Run populates every missing record with the initial dataset.
func Run(ctx context.Context, st store.Store, log *slog.Logger, now time.Time) error {
	services := Services()
	for i := range services {
		services[i].CreatedAt = now
	}

	if err := writeIfAbsent(ctx, st, log, store.KeyServices, services); err != nil {
		return err
	}
	if err := writeIfAbsent(ctx, st, log, store.KeyGallery, GalleryItems()); err != nil {
		return err
	}
	if err := writeIfAbsent(ctx, st, log, store.KeyHours, DefaultHours()); err != nil {
		return err
	}
	if err := writeIfAbsent(ctx, st, log, store.KeyBrand, DefaultBrand()); err != nil {
		return err
	}
	if err := writeIfAbsent(ctx, st, log, store.KeyAdmins, []models.AuthorizedAdmin{}); err != nil {
		return err
	}
	return nil
}
