package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/config"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

var defaultPaymentModes = []models.PaymentMode{
	{Code: "cash", DisplayName: "Cash", RequiresProof: false, Description: "Cash handed over in person"},
	{Code: "bank_transfer", DisplayName: "Bank Transfer", RequiresProof: true, Description: "Wire or SEPA transfer"},
	{Code: "mobile_money", DisplayName: "Mobile Money", RequiresProof: true, Description: "Mobile wallet transfer"},
	{Code: "cheque", DisplayName: "Cheque", RequiresProof: true, Description: "Paper cheque"},
}

// SeedDefaults inserts the static payment modes and, when a seed
// password is configured, a default admin account. Re-running is a
// no-op for rows that already exist.
func SeedDefaults(
	ctx context.Context,
	cfg *config.Config,
	userRepo repositories.UserRepository,
	modeRepo repositories.PaymentModeRepository,
) error {
	for _, m := range defaultPaymentModes {
		existing, err := modeRepo.GetByCode(ctx, m.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		mode := m
		mode.ID = uuid.New()
		if err := modeRepo.Create(ctx, &mode); err != nil {
			return err
		}
		utils.Logger.Infof("Seeded payment mode %s", mode.Code)
	}

	if cfg.SeedAdminPassword == "" {
		utils.Logger.Debug("SEED_ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}

	existing, err := userRepo.GetByEmail(ctx, cfg.SeedAdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:           uuid.New(),
		FullName:     "Administrator",
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	utils.Logger.Infof("Seeded default admin %s", admin.Email)
	return nil
}
