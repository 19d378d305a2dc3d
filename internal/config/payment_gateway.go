package config

type PaymentConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	Razorpay        *RazorpayConfig `yaml:"razorpay"`
	Stripe          *StripeConfig   `yaml:"stripe"`
	Currency        string          `yaml:"currency"`

	// AllowManualUPI gates the direct UPI confirmation path, which trusts
	// the client's word that a payment happened. Off everywhere except
	// controlled test environments.
	AllowManualUPI bool `yaml:"allow_manual_upi"`

	// UPIMerchantVPA is the payee address embedded in generated UPI intents.
	UPIMerchantVPA string `yaml:"upi_merchant_vpa"`

	MinRechargeAmount float64 `yaml:"min_recharge_amount"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	Webhook   string `yaml:"webhook_secret"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_DEFAULT_PROVIDER", "razorpay"),
		Razorpay: &RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Webhook:   getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		},
		Stripe: &StripeConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Currency:          getEnv("PAYMENT_CURRENCY", "INR"),
		AllowManualUPI:    getEnvAsBool("PAYMENT_ALLOW_MANUAL_UPI", false),
		UPIMerchantVPA:    getEnv("PAYMENT_UPI_MERCHANT_VPA", "merchant@upi"),
		MinRechargeAmount: getEnvAsFloat64("PAYMENT_MIN_RECHARGE_AMOUNT", 100),
	}
}
