package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	repo := NewCatalogRepo(DefaultCatalog())
	require.NoError(t, repo.Validate())
	assert.Len(t, repo.Locations(), 10)
	assert.Len(t, repo.TheatersByLocation("vis"), 4)
}

func TestValidateRejectsDanglingLayout(t *testing.T) {
	c := DefaultCatalog()
	c.Theaters = append(c.Theaters, model.Theater{ID: "tx", LocationID: "vis", LayoutID: "layout99"})

	err := NewCatalogRepo(c).Validate()
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestValidateRejectsUnknownLocation(t *testing.T) {
	c := DefaultCatalog()
	c.Theaters = append(c.Theaters, model.Theater{ID: "tx", LocationID: "nowhere", LayoutID: "layout1"})
	assert.Error(t, NewCatalogRepo(c).Validate())
}

func TestLayoutForTheater(t *testing.T) {
	repo := NewCatalogRepo(DefaultCatalog())

	th, l, err := repo.LayoutForTheater("t10")
	require.NoError(t, err)
	assert.Equal(t, "gun", th.LocationID)
	assert.Equal(t, "layout6", l.ID)

	_, _, err = repo.LayoutForTheater("t99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCouponLookupIgnoresCase(t *testing.T) {
	repo := NewCatalogRepo(DefaultCatalog())

	c, err := repo.Coupon("  cine20 ")
	require.NoError(t, err)
	assert.Equal(t, "CINE20", c.Code)

	_, err = repo.Coupon("FREEBIE")
	assert.ErrorIs(t, err, ErrNotFound)
}
