package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
	"github.com/caredomi/homecare-backend-go/internal/pkg/jwt"
)

// NewTokenPurgeJob drops revocation bookkeeping for tokens that expired
// on their own. Entries older than the refresh token lifetime can no
// longer verify anyway.
func NewTokenPurgeJob(jwtService jwt.Service, refreshLifetime time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cutoff := time.Now().Add(-refreshLifetime)
		purged := jwtService.PurgeRevokedBefore(cutoff)
		if purged > 0 {
			slog.Info("Purged revoked tokens", "count", purged)
		}
		return nil
	}
}

// NewPlanExpiryJob flips active care plans to expired once their
// validity window has passed.
func NewPlanExpiryJob(db *database.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		tag, err := db.Exec(ctx, `
			UPDATE care_plans
			SET status = 'expired', updated_at = NOW()
			WHERE status = 'active'
			  AND valid_until IS NOT NULL
			  AND valid_until < CURRENT_DATE
			  AND deleted_at IS NULL
		`)
		if err != nil {
			return fmt.Errorf("failed to expire care plans: %w", err)
		}
		if tag.RowsAffected() > 0 {
			slog.Info("Expired care plans", "count", tag.RowsAffected())
		}
		return nil
	}
}
