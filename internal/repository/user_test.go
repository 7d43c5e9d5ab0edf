package repository

import (
	"context"
	"testing"

	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRoleGrantIsIdempotent(t *testing.T) {
	repo := NewRoleRepository(testutil.NewDB(t))
	ctx := context.Background()

	has, err := repo.HasRole(ctx, "u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repo.Grant(ctx, "u1", model.RoleAdmin))
	require.NoError(t, repo.Grant(ctx, "u1", model.RoleAdmin))
	require.NoError(t, repo.Grant(ctx, "u1", model.RoleModerator))

	has, err = repo.HasRole(ctx, "u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, has)

	roles, err := repo.Roles(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.AppRole{model.RoleAdmin, model.RoleModerator}, roles)
}

func TestProfileFirstOrCreateThenUpdate(t *testing.T) {
	repo := NewProfileRepository(testutil.NewDB(t))
	ctx := context.Background()

	p, err := repo.FirstOrCreate(ctx, &model.Profile{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", p.Email)

	p, err = repo.FirstOrCreate(ctx, &model.Profile{ID: "u1", Email: "other@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", p.Email)

	name := "Asha"
	p, err = repo.Update(ctx, "u1", ProfileFields{FullName: &name})
	require.NoError(t, err)
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Asha", *p.FullName)
	assert.Nil(t, p.Phone)

	_, err = repo.Update(ctx, "missing", ProfileFields{FullName: &name})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFavorites(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	b1 := testutil.InsertBusiness(t, db, testutil.SampleBusiness("GS-1", "Pune"))
	b2 := testutil.InsertBusiness(t, db, testutil.SampleBusiness("GS-2", "Pune"))

	require.NoError(t, repo.Add(ctx, &model.Favorite{ID: uuid.NewString(), UserID: "u1", BusinessID: b1.ID}))
	require.NoError(t, repo.Add(ctx, &model.Favorite{ID: uuid.NewString(), UserID: "u1", BusinessID: b1.ID}))
	require.NoError(t, repo.Add(ctx, &model.Favorite{ID: uuid.NewString(), UserID: "u1", BusinessID: b2.ID}))

	got, err := repo.ListBusinesses(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, repo.Remove(ctx, "u1", b1.ID))
	got, err = repo.ListBusinesses(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b2.ID, got[0].ID)
}

func TestReviewsAndInquiries(t *testing.T) {
	db := testutil.NewDB(t)
	reviews := NewReviewRepository(db)
	inquiries := NewInquiryRepository(db)
	ctx := context.Background()

	r := &model.Review{ID: uuid.NewString(), BusinessID: "b1", UserID: "u1", Rating: 5, Status: model.ReviewPending}
	require.NoError(t, reviews.Create(ctx, r))

	public, err := reviews.ListByBusiness(ctx, "b1", model.ReviewApproved)
	require.NoError(t, err)
	assert.Empty(t, public)

	require.NoError(t, reviews.SetStatus(ctx, r.ID, model.ReviewApproved))
	public, err = reviews.ListByBusiness(ctx, "b1", model.ReviewApproved)
	require.NoError(t, err)
	assert.Len(t, public, 1)
	assert.ErrorIs(t, reviews.SetStatus(ctx, "missing", model.ReviewApproved), gorm.ErrRecordNotFound)

	q := &model.Inquiry{ID: uuid.NewString(), BusinessID: "b1", Name: "V", Email: "v@x.com", Message: "open sunday?", Status: model.InquiryNew}
	require.NoError(t, inquiries.Create(ctx, q))

	n, err := inquiries.CountByStatus(ctx, model.InquiryNew)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, inquiries.SetStatus(ctx, q.ID, model.InquiryResolved))
	open, err := inquiries.List(ctx, model.InquiryNew)
	require.NoError(t, err)
	assert.Empty(t, open)
}
