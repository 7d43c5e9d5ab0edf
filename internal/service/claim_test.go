package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/repository"
	"gsinfo-directory/internal/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ClaimServiceSuite struct {
	suite.Suite
	db         *gorm.DB
	businesses repository.BusinessRepository
	claims     repository.ClaimRepository
	service    ClaimService
	business   *model.Business
}

func (s *ClaimServiceSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.businesses = repository.NewBusinessRepository(s.db)
	s.claims = repository.NewClaimRepository(s.db)
	s.service = NewClaimService(s.db, s.claims, s.businesses, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.business = testutil.InsertBusiness(s.T(), s.db, testutil.SampleBusiness("GS-1", "Pune"))
}

func (s *ClaimServiceSuite) reloadBusiness() *model.Business {
	b, err := s.businesses.FindByID(context.Background(), nil, s.business.ID)
	s.Require().NoError(err)
	return b
}

func (s *ClaimServiceSuite) TestApproveSetsOwnership() {
	claim := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)
	notes := "documents match"

	decided, err := s.service.Decide(context.Background(), "admin-1", claim.ID, model.ClaimApproved, &notes)
	s.Require().NoError(err)
	s.Equal(model.ClaimApproved, decided.Status)
	s.Require().NotNil(decided.ReviewerNotes)
	s.Equal(notes, *decided.ReviewerNotes)

	b := s.reloadBusiness()
	s.True(b.Claimed)
	s.Require().NotNil(b.ClaimedBy)
	s.Equal("u1", *b.ClaimedBy)
	s.NotNil(b.ClaimedAt)
}

func (s *ClaimServiceSuite) TestApproveTwiceIsConflict() {
	claim := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)
	ctx := context.Background()

	_, err := s.service.Decide(ctx, "admin-1", claim.ID, model.ClaimApproved, nil)
	s.Require().NoError(err)
	before := s.reloadBusiness()

	_, err = s.service.Decide(ctx, "admin-2", claim.ID, model.ClaimApproved, nil)
	s.True(apperror.Is(err, apperror.KindConflict))

	after := s.reloadBusiness()
	s.Equal(before.Claimed, after.Claimed)
	s.Equal(*before.ClaimedBy, *after.ClaimedBy)
	s.True(before.ClaimedAt.Equal(*after.ClaimedAt))
}

func (s *ClaimServiceSuite) TestRejectLeavesBusinessUntouched() {
	claim := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)
	before := s.reloadBusiness()

	decided, err := s.service.Decide(context.Background(), "admin-1", claim.ID, model.ClaimRejected, nil)
	s.Require().NoError(err)
	s.Equal(model.ClaimRejected, decided.Status)

	after := s.reloadBusiness()
	s.False(after.Claimed)
	s.Nil(after.ClaimedBy)
	s.Nil(after.ClaimedAt)
	s.True(before.UpdatedAt.Equal(after.UpdatedAt))

	_, err = s.service.Decide(context.Background(), "admin-1", claim.ID, model.ClaimApproved, nil)
	s.True(apperror.Is(err, apperror.KindConflict))
	s.False(s.reloadBusiness().Claimed)
}

func (s *ClaimServiceSuite) TestApproveOnClaimedBusinessRollsBack() {
	first := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)
	second := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u2", model.ClaimPending)
	ctx := context.Background()

	_, err := s.service.Decide(ctx, "admin-1", first.ID, model.ClaimApproved, nil)
	s.Require().NoError(err)

	_, err = s.service.Decide(ctx, "admin-1", second.ID, model.ClaimApproved, nil)
	s.True(apperror.Is(err, apperror.KindConflict))

	// the claim update was rolled back with the business update
	got, err := s.claims.FindByID(ctx, nil, second.ID)
	s.Require().NoError(err)
	s.Equal(model.ClaimPending, got.Status)
	s.Nil(got.DecidedBy)
	s.Equal("u1", *s.reloadBusiness().ClaimedBy)
}

func (s *ClaimServiceSuite) TestApproveMissingBusinessRollsBack() {
	claim := testutil.InsertClaim(s.T(), s.db, "gone", "u1", model.ClaimPending)

	_, err := s.service.Decide(context.Background(), "admin-1", claim.ID, model.ClaimApproved, nil)
	s.True(apperror.Is(err, apperror.KindNotFound))

	got, err := s.claims.FindByID(context.Background(), nil, claim.ID)
	s.Require().NoError(err)
	s.Equal(model.ClaimPending, got.Status)
}

func (s *ClaimServiceSuite) TestDecideErrors() {
	_, err := s.service.Decide(context.Background(), "admin-1", "missing", model.ClaimApproved, nil)
	s.True(apperror.Is(err, apperror.KindNotFound))

	claim := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)
	_, err = s.service.Decide(context.Background(), "admin-1", claim.ID, model.ClaimPending, nil)
	s.True(apperror.Is(err, apperror.KindValidation))
}

func (s *ClaimServiceSuite) TestConcurrentApprovalsDecideOnce() {
	claim := testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Decide(context.Background(), "admin", claim.ID, model.ClaimApproved, nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperror.Is(err, apperror.KindConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(4, conflicts)
}

func (s *ClaimServiceSuite) TestSubmit() {
	ctx := context.Background()
	doc := "https://files.example/gst.pdf"

	claim, err := s.service.Submit(ctx, "u1", s.business.ID, &doc, nil)
	s.Require().NoError(err)
	s.Equal(model.ClaimPending, claim.Status)

	_, err = s.service.Submit(ctx, "u1", s.business.ID, nil, nil)
	s.True(apperror.Is(err, apperror.KindConflict))

	_, err = s.service.Submit(ctx, "u1", "missing", nil, nil)
	s.True(apperror.Is(err, apperror.KindNotFound))

	_, err = s.service.Decide(ctx, "admin-1", claim.ID, model.ClaimApproved, nil)
	s.Require().NoError(err)
	_, err = s.service.Submit(ctx, "u2", s.business.ID, nil, nil)
	s.True(apperror.Is(err, apperror.KindConflict))
}

func (s *ClaimServiceSuite) TestConcurrentSubmitsStoreOneClaim() {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Submit(context.Background(), "u1", s.business.ID, nil, nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperror.Is(err, apperror.KindConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(4, conflicts)

	n, err := s.claims.CountByStatus(context.Background(), model.ClaimPending)
	s.Require().NoError(err)
	s.EqualValues(1, n)
}

func (s *ClaimServiceSuite) TestResubmitAfterRejection() {
	ctx := context.Background()

	claim, err := s.service.Submit(ctx, "u1", s.business.ID, nil, nil)
	s.Require().NoError(err)
	_, err = s.service.Decide(ctx, "admin-1", claim.ID, model.ClaimRejected, nil)
	s.Require().NoError(err)

	again, err := s.service.Submit(ctx, "u1", s.business.ID, nil, nil)
	s.Require().NoError(err)
	s.NotEqual(claim.ID, again.ID)
}

func (s *ClaimServiceSuite) TestList() {
	testutil.InsertClaim(s.T(), s.db, s.business.ID, "u1", model.ClaimPending)
	testutil.InsertClaim(s.T(), s.db, s.business.ID, "u2", model.ClaimRejected)

	claims, err := s.service.List(context.Background(), model.ClaimPending, 0)
	s.Require().NoError(err)
	s.Len(claims, 1)

	claims, err = s.service.List(context.Background(), "", 1)
	s.Require().NoError(err)
	s.Len(claims, 1)

	_, err = s.service.List(context.Background(), "bogus", 0)
	s.True(apperror.Is(err, apperror.KindValidation))
}

func TestClaimServiceSuite(t *testing.T) {
	suite.Run(t, new(ClaimServiceSuite))
}
