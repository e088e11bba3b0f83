package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
	"github.com/Rikigb-hub/mi-peluqueria-api/internal/store"
)

func TestHoursFallsBackToDefaults(t *testing.T) {
	st := store.NewMemory()
	defaults := models.BusinessHours{
		0: {IsOpen: false, Open: "09:00", Close: "20:00"},
		1: {IsOpen: true, Open: "09:00", Close: "20:00"},
		2: {IsOpen: true, Open: "09:00", Close: "20:00"},
		3: {IsOpen: true, Open: "09:00", Close: "20:00"},
		4: {IsOpen: true, Open: "09:00", Close: "20:00"},
		5: {IsOpen: true, Open: "09:00", Close: "20:00"},
		6: {IsOpen: true, Open: "09:00", Close: "14:00"},
	}
	hours := NewHours(st, defaults)

	got, err := hours.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaults, got)

	updated := defaults
	updated[0] = models.DaySchedule{IsOpen: true, Open: "10:00", Close: "15:00"}
	require.NoError(t, hours.Put(context.Background(), updated))

	got, err = hours.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got[0].IsOpen)
	assert.Equal(t, "10:00", got[0].Open)
}

func TestCatalogFindByID(t *testing.T) {
	st := store.NewMemory()
	catalog := NewCatalog(st)

	require.NoError(t, catalog.Save(context.Background(), []models.Service{
		{ID: "corte", Name: "Corte", Price: 14},
		{ID: "tinte", Name: "Tinte", Price: 24},
	}))

	svc, err := catalog.FindByID(context.Background(), "tinte")
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, 24, svc.Price)

	missing, err := catalog.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdminsMasterAlwaysAuthorized(t *testing.T) {
	st := store.NewMemory()
	admins := NewAdmins(st, "Soni.GB.2o@hotmail.com")

	assert.Equal(t, "soni.gb.2o@hotmail.com", admins.MasterEmail())

	ok, err := admins.IsAuthorized(context.Background(), "SONI.GB.2O@hotmail.com")
	require.NoError(t, err)
	assert.True(t, ok, "master admin must be authorized without any record")

	ok, err = admins.IsAuthorized(context.Background(), "otro@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, admins.Save(context.Background(), []models.AuthorizedAdmin{{Email: "Otro@Example.com"}}))

	ok, err = admins.IsAuthorized(context.Background(), "otro@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}
