package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Daybill"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"daybill"`
	}

	SMTP struct {
		Host     string `envconfig:"SMTP_HOST" default:"localhost"`
		Port     int    `envconfig:"SMTP_PORT" default:"587"`
		Username string `envconfig:"SMTP_USERNAME" default:""`
		Password string `envconfig:"SMTP_PASSWORD" default:""`
		From     string `envconfig:"SMTP_FROM" default:"billing@example.com"`
	}

	// Business is the issuer identity printed on every invoice document.
	Business struct {
		Name    string `envconfig:"BUSINESS_NAME" default:"Freelance Services"`
		Address string `envconfig:"BUSINESS_ADDRESS" default:""`
		Email   string `envconfig:"BUSINESS_EMAIL" default:""`
		Phone   string `envconfig:"BUSINESS_PHONE" default:""`
	}

	// Payment is the static payment-instruction block on invoice documents.
	Payment struct {
		BankName      string `envconfig:"PAYMENT_BANK_NAME" default:""`
		AccountName   string `envconfig:"PAYMENT_ACCOUNT_NAME" default:""`
		AccountNumber string `envconfig:"PAYMENT_ACCOUNT_NUMBER" default:""`
	}

	Invoice struct {
		// DueDays is the default payment term applied when a generation
		// request carries no explicit due date.
		DueDays int `envconfig:"INVOICE_DUE_DAYS" default:"30"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
