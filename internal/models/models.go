package models

import "time"

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"

	CategoryHair  = "hair"
	CategoryBeard = "beard"
	CategoryCombo = "combo"
	CategoryOther = "other"
)

type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int       `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	ImageURL        string    `json:"imageUrl"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Appointment carries a denormalized snapshot of the service name and
// price taken at booking time. Later catalog edits must not alter it.
type Appointment struct {
	ID          string    `json:"id"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	UserPhone   string    `json:"userPhone"`
	ServiceID   string    `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Price       int       `json:"price"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type DaySchedule struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen bool   `json:"isOpen"`
}

// BusinessHours maps weekday index (0=Sunday .. 6=Saturday) to that
// day's opening schedule. Admin updates replace all seven entries.
type BusinessHours map[int]DaySchedule

type GalleryItem struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
}

type Testimonial struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

type BrandConfig struct {
	Logo              string        `json:"logo,omitempty"`
	SalonName         string        `json:"salonName"`
	Address           string        `json:"address,omitempty"`
	WhatsApp          string        `json:"whatsapp,omitempty"`
	MapURL            string        `json:"mapUrl,omitempty"`
	InstagramURL      string        `json:"instagramUrl,omitempty"`
	FacebookURL       string        `json:"facebookUrl,omitempty"`
	TikTokURL         string        `json:"tiktokUrl,omitempty"`
	HeroTitle         string        `json:"heroTitle,omitempty"`
	HeroSubtitle      string        `json:"heroSubtitle,omitempty"`
	HeroDescription   string        `json:"heroDescription,omitempty"`
	AboutTitle        string        `json:"aboutTitle,omitempty"`
	AboutText         string        `json:"aboutText,omitempty"`
	ServicesTitle     string        `json:"servicesTitle,omitempty"`
	AITitle           string        `json:"aiTitle,omitempty"`
	AIDescription     string        `json:"aiDescription,omitempty"`
	GalleryTitle      string        `json:"galleryTitle,omitempty"`
	FooterDescription string        `json:"footerDescription,omitempty"`
	Testimonials      []Testimonial `json:"testimonials,omitempty"`
}

type AuthorizedAdmin struct {
	Email   string    `json:"email"`
	AddedAt time.Time `json:"addedAt"`
}
