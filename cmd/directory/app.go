package main

import (
	"fmt"
	"log/slog"
	"os"

	"gsinfo-directory/internal/auth"
	"gsinfo-directory/internal/client"
	"gsinfo-directory/internal/config"
	"gsinfo-directory/internal/listing"
	"gsinfo-directory/internal/logger"
	"gsinfo-directory/internal/repository"
	"gsinfo-directory/internal/server"
	"gsinfo-directory/internal/service"

	"gorm.io/gorm"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *gorm.DB
	catalog *listing.Catalog

	roleRepo repository.RoleRepository
	services server.Services
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(os.Stderr, cfg.Log).With("env", cfg.Environment.Name)
	slog.SetDefault(log)

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		return nil, err
	}

	catalog, err := listing.LoadCatalog(cfg.ListingsFile)
	if err != nil {
		return nil, err
	}

	cashfreeClient := client.NewCashfreeClient(&cfg.Cashfree)
	midtransClient := client.NewMidtransClient(&cfg.Midtrans)
	braintreeClient := client.NewBraintreeClient(&cfg.BrainTree)

	var gateway client.PaymentGateway
	switch cfg.Payment.Provider {
	case client.ProviderCashfree:
		gateway = cashfreeClient
	case client.ProviderMidtrans:
		gateway = midtransClient
	case client.ProviderBraintree:
		gateway = braintreeClient
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.Payment.Provider)
	}

	businessRepo := repository.NewBusinessRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	paymentService := service.NewPaymentService(
		db, gateway,
		cashfreeClient,
		midtransClient,
		braintreeClient,
		repository.NewOrderRepository(db),
		repository.NewWebhookEventRepository(db),
		service.PaymentSettings{
			BaseURL:       cfg.BaseURL,
			NotifyBaseURL: cfg.NotifyBaseURL,
			Currency:      cfg.Payment.Currency,
			OrderNote:     cfg.Cashfree.OrderNote,
			UPIPayeeVPA:   cfg.UPI.PayeeVPA,
			UPIPayeeName:  cfg.UPI.PayeeName,
		},
		log,
	)

	return &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		catalog:  catalog,
		roleRepo: roleRepo,
		services: server.Services{
			Payment:  paymentService,
			Claim:    service.NewClaimService(db, claimRepo, businessRepo, log),
			Business: service.NewBusinessService(businessRepo, log),
			Review:   service.NewReviewService(reviewRepo, businessRepo),
			Inquiry:  service.NewInquiryService(inquiryRepo, businessRepo),
			User:     service.NewUserService(profileRepo, roleRepo, repository.NewFavoriteRepository(db), businessRepo),
			Admin:    service.NewAdminService(profileRepo, businessRepo, claimRepo, reviewRepo, inquiryRepo, catalog),
		},
	}, nil
}

func (a *app) newServer() *server.Server {
	verifier := auth.NewTokenVerifier(a.cfg.Auth.JWTSecret, a.cfg.Auth.JWTIssuer)
	return server.NewServer(a.services, a.catalog, verifier, a.roleRepo, a.logger)
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
