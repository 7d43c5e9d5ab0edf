package service

import (
	"context"
	"testing"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/listing"
	"gsinfo-directory/internal/repository"
	"gsinfo-directory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessImportFromCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewBusinessRepository(db)
	svc := NewBusinessService(repo, nil)
	ctx := context.Background()

	catalog, err := listing.LoadCatalog("")
	require.NoError(t, err)

	_, err = svc.Import(ctx, catalog.All())
	require.NoError(t, err)
	// importing again updates in place
	_, err = svc.Import(ctx, catalog.All())
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, catalog.Len(), n)

	b, err := repo.FindByListingID(ctx, "GS-PUN-0001")
	require.NoError(t, err)
	assert.Equal(t, "Vaishali Cafe", b.Name)
	assert.Equal(t, []string{"02025531244"}, []string(b.PhoneNumbers))
	require.NotNil(t, b.GeoLat)
	assert.InDelta(t, 18.5204, *b.GeoLat, 1e-9)
	assert.NotNil(t, b.LastUpdated)
}

func TestBusinessImportRejectsIncompleteListing(t *testing.T) {
	svc := NewBusinessService(repository.NewBusinessRepository(testutil.NewDB(t)), nil)

	_, err := svc.Import(context.Background(), []listing.Listing{{ListingID: "X"}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestBusinessImportRepeatedListingID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewBusinessRepository(db)
	svc := NewBusinessService(repo, nil)
	ctx := context.Background()

	affected, err := svc.Import(ctx, []listing.Listing{
		{ListingID: "GS-DUP-1", Name: "Old Name", City: "Pune"},
		{ListingID: "GS-DUP-2", Name: "Other", City: "Pune"},
		{ListingID: "GS-DUP-1", Name: "New Name", City: "Mumbai"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	b, err := repo.FindByListingID(ctx, "GS-DUP-1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", b.Name)
	assert.Equal(t, "Mumbai", b.City)
}

func TestBusinessAdminOperations(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBusinessService(repository.NewBusinessRepository(db), nil)
	ctx := context.Background()
	b := testutil.InsertBusiness(t, db, testutil.SampleBusiness("GS-1", "Pune"))

	require.NoError(t, svc.SetVerified(ctx, b.ID, true))
	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	list, err := svc.List(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err = svc.Get(ctx, b.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.True(t, apperror.Is(svc.Delete(ctx, b.ID), apperror.KindNotFound))
	assert.True(t, apperror.Is(svc.SetVerified(ctx, b.ID, false), apperror.KindNotFound))
}

func TestBusinessFromListingWithoutGeo(t *testing.T) {
	b := BusinessFromListing(listing.Listing{ListingID: "X", Name: "No Geo", LastUpdated: "yesterday"})

	assert.Nil(t, b.GeoLat)
	assert.Nil(t, b.GeoLon)
	assert.Nil(t, b.LastUpdated)
	assert.NotEmpty(t, b.ID)
}
