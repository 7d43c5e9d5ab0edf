//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"gsinfo-directory/internal/client"
	"gsinfo-directory/internal/config"
	"gsinfo-directory/internal/model"
	"gsinfo-directory/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type PostgresSuite struct {
	suite.Suite
	db *gorm.DB
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("directory"),
		postgres.WithUsername("directory"),
		postgres.WithPassword("directory"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(s.T(), ctr)
	s.Require().NoError(err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = client.InitDBClient(config.Database{Driver: "postgres", URL: dsn})
	s.Require().NoError(err)
	s.Require().NoError(client.AutoMigrate(s.db))
}

func (s *PostgresSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *PostgresSuite) TestConcurrentDecisionsSettleOnce() {
	ctx := context.Background()
	claims := NewClaimRepository(s.db)
	business := testutil.InsertBusiness(s.T(), s.db, testutil.SampleBusiness("PG-"+uuid.NewString()[:8], "Pune"))
	claim := testutil.InsertClaim(s.T(), s.db, business.ID, "u1", model.ClaimPending)

	const admins = 8
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < admins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decided, err := claims.Decide(ctx, nil, ClaimDecision{
				ClaimID:   claim.ID,
				Status:    model.ClaimApproved,
				DecidedBy: uuid.NewString(),
				DecidedAt: time.Now(),
			})
			require.NoError(s.T(), err)
			if decided {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, won)
}

func (s *PostgresSuite) TestConcurrentSubmissionsKeepOnePending() {
	ctx := context.Background()
	claims := NewClaimRepository(s.db)
	business := testutil.InsertBusiness(s.T(), s.db, testutil.SampleBusiness("PG-"+uuid.NewString()[:8], "Pune"))

	const submitters = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := claims.CreatePending(ctx, &model.BusinessClaim{ID: uuid.NewString(), BusinessID: business.ID, UserID: "u1"})
			require.NoError(s.T(), err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)

	var n int64
	s.Require().NoError(s.db.Model(&model.BusinessClaim{}).
		Where("business_id = ? AND status = ?", business.ID, model.ClaimPending).
		Count(&n).Error)
	s.EqualValues(1, n)
}

func (s *PostgresSuite) TestMarkClaimedOnlyOnce() {
	ctx := context.Background()
	businesses := NewBusinessRepository(s.db)
	business := testutil.InsertBusiness(s.T(), s.db, testutil.SampleBusiness("PG-"+uuid.NewString()[:8], "Pune"))

	ok, err := businesses.MarkClaimed(ctx, nil, business.ID, "u1", time.Now())
	s.Require().NoError(err)
	s.True(ok)

	ok, err = businesses.MarkClaimed(ctx, nil, business.ID, "u2", time.Now())
	s.Require().NoError(err)
	s.False(ok)

	got, err := businesses.FindByID(ctx, nil, business.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.ClaimedBy)
	s.Equal("u1", *got.ClaimedBy)
}

func (s *PostgresSuite) TestUpsertKeepsClaimFields() {
	ctx := context.Background()
	businesses := NewBusinessRepository(s.db)
	listingID := "PG-" + uuid.NewString()[:8]
	business := testutil.InsertBusiness(s.T(), s.db, testutil.SampleBusiness(listingID, "Pune"))

	_, err := businesses.MarkClaimed(ctx, nil, business.ID, "u1", time.Now())
	s.Require().NoError(err)

	renamed := testutil.SampleBusiness(listingID, "Pune")
	renamed.Name = "Renamed"
	_, err = businesses.UpsertByListingID(ctx, []*model.Business{renamed})
	s.Require().NoError(err)

	got, err := businesses.FindByListingID(ctx, listingID)
	s.Require().NoError(err)
	s.Equal(business.ID, got.ID)
	s.Equal("Renamed", got.Name)
	s.True(got.Claimed)
}

func (s *PostgresSuite) TestOrderTransitionAndWebhookDedup() {
	ctx := context.Background()
	orders := NewOrderRepository(s.db)
	events := NewWebhookEventRepository(s.db)

	order := &model.PaymentOrder{
		ID:       uuid.NewString(),
		OrderID:  "ORDER_" + uuid.NewString()[:8],
		UserID:   "u1",
		Amount:   decimal.NewFromInt(999),
		Currency: "INR",
		Status:   model.OrderPending,
		Provider: client.ProviderCashfree,
	}
	s.Require().NoError(orders.Create(ctx, nil, order))

	inserted, err := events.MarkProcessed(ctx, nil, &model.WebhookEvent{EventID: "evt-" + order.OrderID, Provider: client.ProviderCashfree, OrderID: order.OrderID})
	s.Require().NoError(err)
	s.True(inserted)

	inserted, err = events.MarkProcessed(ctx, nil, &model.WebhookEvent{EventID: "evt-" + order.OrderID, Provider: client.ProviderCashfree, OrderID: order.OrderID})
	s.Require().NoError(err)
	s.False(inserted)

	moved, err := orders.Transition(ctx, nil, order.OrderID, model.OrderPaid)
	s.Require().NoError(err)
	s.True(moved)

	moved, err = orders.Transition(ctx, nil, order.OrderID, model.OrderFailed)
	s.Require().NoError(err)
	s.False(moved)

	got, err := orders.FindByOrderID(ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal(model.OrderPaid, got.Status)
	s.True(decimal.NewFromInt(999).Equal(got.Amount))
}
