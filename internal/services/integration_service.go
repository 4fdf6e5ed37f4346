// internal/services/integration_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/balance"

	"github.com/brianstore/store-backend/internal/config"
	"github.com/brianstore/store-backend/internal/models"
)

// IntegrationService connects the store to its accounting and payment partners.
// Connections only flip settings flags; nothing is ever charged or synced.
type IntegrationService struct {
	store            *StoreService
	quickBooksDelay  time.Duration
	processorDelay   time.Duration
	stripeConfigured bool
	verifyStripe     func(ctx context.Context) error
	log              *logrus.Entry
}

func NewIntegrationService(store *StoreService, cfg *config.Config) *IntegrationService {
	svc := &IntegrationService{
		store:            store,
		quickBooksDelay:  time.Duration(cfg.Integrations.QuickBooksDelayMs) * time.Millisecond,
		processorDelay:   time.Duration(cfg.Integrations.PaymentProcessorDelayMs) * time.Millisecond,
		stripeConfigured: cfg.Payment.StripeSecretKey != "",
		verifyStripe:     verifyStripeKey,
		log:              logrus.WithField("component", "integrations"),
	}
	if svc.stripeConfigured {
		stripe.Key = cfg.Payment.StripeSecretKey
	}
	return svc
}

// verifyStripeKey performs a read-only balance lookup to prove the key works.
func verifyStripeKey(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx
	if _, err := balance.Get(params); err != nil {
		return fmt.Errorf("failed to verify stripe key: %w", err)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ConnectQuickBooks links the accounting package and upgrades the store to enterprise.
func (s *IntegrationService) ConnectQuickBooks(ctx context.Context) (models.StoreSettings, error) {
	if err := wait(ctx, s.quickBooksDelay); err != nil {
		return s.store.Settings(), fmt.Errorf("quickbooks connection aborted: %w", err)
	}

	connected, enterprise := true, true
	settings := s.store.UpdateSettings(ctx, models.SettingsUpdate{
		QuickBooksConnected: &connected,
		IsEnterprise:        &enterprise,
	})
	s.log.Info("QuickBooks connected")
	return settings, nil
}

func (s *IntegrationService) DisconnectQuickBooks(ctx context.Context) models.StoreSettings {
	connected := false
	settings := s.store.UpdateSettings(ctx, models.SettingsUpdate{QuickBooksConnected: &connected})
	s.log.Info("QuickBooks disconnected")
	return settings
}

// ConnectPaymentProcessor verifies the Stripe key when one is configured,
// otherwise it simulates the handshake delay.
func (s *IntegrationService) ConnectPaymentProcessor(ctx context.Context) (models.StoreSettings, error) {
	if s.stripeConfigured {
		if err := s.verifyStripe(ctx); err != nil {
			s.log.WithError(err).Warn("Payment processor verification failed")
			return s.store.Settings(), err
		}
	} else if err := wait(ctx, s.processorDelay); err != nil {
		return s.store.Settings(), fmt.Errorf("payment processor connection aborted: %w", err)
	}

	connected := true
	settings := s.store.UpdateSettings(ctx, models.SettingsUpdate{PaymentProcessorConnected: &connected})
	s.log.Info("Payment processor connected")
	return settings, nil
}
