package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/daybillhq/daybill/internal/client"
	clientStore "github.com/daybillhq/daybill/internal/client/store"
	"github.com/daybillhq/daybill/internal/config"
	"github.com/daybillhq/daybill/internal/database"
	"github.com/daybillhq/daybill/internal/document"
	daybillHttp "github.com/daybillhq/daybill/internal/http"
	clientHandler "github.com/daybillhq/daybill/internal/http/client"
	invoiceHandler "github.com/daybillhq/daybill/internal/http/invoice"
	projectHandler "github.com/daybillhq/daybill/internal/http/project"
	workdayHandler "github.com/daybillhq/daybill/internal/http/workday"
	"github.com/daybillhq/daybill/internal/invoice"
	invoiceStore "github.com/daybillhq/daybill/internal/invoice/store"
	"github.com/daybillhq/daybill/internal/mail"
	"github.com/daybillhq/daybill/internal/project"
	projectStore "github.com/daybillhq/daybill/internal/project/store"
	"github.com/daybillhq/daybill/internal/workday"
	workdayStore "github.com/daybillhq/daybill/internal/workday/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	mailer, err := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		slog.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	renderer := document.NewRenderer(
		document.Business{
			Name:    cfg.Business.Name,
			Address: cfg.Business.Address,
			Email:   cfg.Business.Email,
			Phone:   cfg.Business.Phone,
		},
		document.Payment{
			BankName:      cfg.Payment.BankName,
			AccountName:   cfg.Payment.AccountName,
			AccountNumber: cfg.Payment.AccountNumber,
		},
	)

	var (
		clientService  = client.NewService(clientStore.New(db))
		projectService = project.NewService(projectStore.New(db))
		workdayService = workday.NewService(workdayStore.New(db))
		invoiceService = invoice.NewService(
			invoiceStore.New(db),
			clientService,
			projectService,
			workdayService,
			renderer,
			mailer,
			cfg.Invoice.DueDays,
		)
	)

	var (
		clientH  = clientHandler.NewHandler(clientService)
		projectH = projectHandler.NewHandler(projectService)
		workdayH = workdayHandler.NewHandler(workdayService)
		invoiceH = invoiceHandler.NewHandler(invoiceService)
	)

	router := daybillHttp.New(clientH, projectH, workdayH, invoiceH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
