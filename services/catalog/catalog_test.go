package catalog

import (
	"context"
	"testing"

	"okclinic/database/repository/memory"
	"okclinic/models"
	"okclinic/utils/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }
func minutes(v int) *int        { return &v }

func TestCatalogService(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(memory.NewServiceStore())

	_, err := svc.CreateService(ctx, models.ServiceRequest{Price: price(10)})
	assert.True(t, apperr.Is(err, apperr.ErrValidation), "name required")
	_, err = svc.CreateService(ctx, models.ServiceRequest{Name: "Exam"})
	assert.True(t, apperr.Is(err, apperr.ErrValidation), "price required")
	_, err = svc.CreateService(ctx, models.ServiceRequest{Name: "Exam", Price: price(-1)})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))
	_, err = svc.CreateService(ctx, models.ServiceRequest{Name: "Exam", Price: price(1), Status: "archived"})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))

	exam, err := svc.CreateService(ctx, models.ServiceRequest{Name: "Exam", Category: "General", Price: price(75), Duration: minutes(30)})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceStatusActive, exam.Status)

	grooming, err := svc.CreateService(ctx, models.ServiceRequest{Name: "Grooming", Price: price(40), Status: models.ServiceStatusInactive})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, exam.ID, active[0].ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := svc.UpdateService(ctx, exam.ID, models.ServiceRequest{Price: price(80)})
	require.NoError(t, err)
	assert.Equal(t, 80.0, updated.Price)
	assert.Equal(t, "Exam", updated.Name)
	assert.Equal(t, 30, updated.Duration)

	_, err = svc.UpdateService(ctx, "missing", models.ServiceRequest{Price: price(1)})
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))

	require.NoError(t, svc.DeleteService(ctx, grooming.ID))
	assert.True(t, apperr.Is(svc.DeleteService(ctx, grooming.ID), apperr.ErrNotFound))
}

func TestCatalogEditDoesNotTouchSnapshots(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(memory.NewServiceStore())

	exam, err := svc.CreateService(ctx, models.ServiceRequest{Name: "Exam", Price: price(75)})
	require.NoError(t, err)
	snap := exam.Snapshot()

	_, err = svc.UpdateService(ctx, exam.ID, models.ServiceRequest{Price: price(99)})
	require.NoError(t, err)
	assert.Equal(t, 75.0, snap.Price)
}
