package gateway

import (
	"fmt"
	"strings"

	httpclient "github.com/piresc/toolshare/internal/pkg/http"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment"
)

// NewProviderGW selects the payment provider named by PAYMENT_PROVIDER
func NewProviderGW(cfg *models.Config, client *httpclient.EnhancedClient) (payment.ProviderGW, error) {
	switch strings.ToLower(cfg.Payment.Provider) {
	case "", "paypal":
		if cfg.PayPal.ClientID == "" || cfg.PayPal.ClientSecret == "" {
			return nil, fmt.Errorf("PayPal credentials are not configured")
		}
		return NewPayPalGW(cfg.PayPal, client), nil
	case "fake":
		return NewFakeGW(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Payment.Provider)
	}
}
