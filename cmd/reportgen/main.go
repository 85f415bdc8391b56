// Command reportgen renders reports from the command line, for scheduled
// jobs and ad-hoc exports that bypass the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/export"
	"github.com/boticaplus/backend/internal/report"
	"github.com/boticaplus/backend/internal/repository/postgres"
	"github.com/boticaplus/backend/internal/service"
	"github.com/boticaplus/backend/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		newDBURLFlag(),
		&cli.StringFlag{
			Name:  "range",
			Usage: "Relative period: 7days, 30days, 90days, 365days or thisYear",
			Value: "30days",
		},
		&cli.StringFlag{
			Name:  "start-date",
			Usage: "Explicit period start (YYYY-MM-DD); overrides --range together with --end-date",
		},
		&cli.StringFlag{
			Name:  "end-date",
			Usage: "Explicit period end (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: csv, txt or pdf",
			Value: "csv",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Usage:   "Directory to write the rendered report into",
			Value:   "./data/exports",
			EnvVars: []string{"APP_EXPORT_DIR"},
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Number of top products to include",
			Value: report.DefaultTopProducts,
		},
		&cli.BoolFlag{
			Name:  "upload",
			Usage: "Also upload the report to object storage (STORAGE_* env vars)",
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "reportgen",
		Usage: "Generate pharmacy reports outside the HTTP server",
		Commands: []*cli.Command{
			{
				Name:   "sales",
				Usage:  "Generate the sales report for a period",
				Flags:  reportFlags(),
				Action: generateReport("sales"),
			},
			{
				Name:   "inventory",
				Usage:  "Generate the current stock snapshot report",
				Flags:  reportFlags(),
				Action: generateReport("inventory"),
			},
			{
				Name:   "financial",
				Usage:  "Generate the financial performance report for a period",
				Flags:  reportFlags(),
				Action: generateReport("financial"),
			},
			{
				Name:  "fetch",
				Usage: "Download an archived export from object storage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Object key, e.g. exports/sales_report_2025-03-09_2025-03-15.csv",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Usage:   "Directory to download the artifact into",
						Value:   "./data/exports",
						EnvVars: []string{"APP_EXPORT_DIR"},
					},
				},
				Action: fetchExport,
			},
			{
				Name:  "seed-admin",
				Usage: "Create an initial admin account",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "full-name", Value: "Administrator"},
				},
				Action: seedAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generateReport(reportType string) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := sqlx.Connect("pgx", c.String("db-url"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		svc := service.NewReportService(
			postgres.NewSalesRepository(db),
			postgres.NewProductRepository(db),
			nil,
		)

		format, err := export.ParseFormat(c.String("format"))
		if err != nil {
			return err
		}

		spec := report.PeriodSpec{
			Range:     c.String("range"),
			StartDate: c.String("start-date"),
			EndDate:   c.String("end-date"),
		}

		artifact, err := renderReport(c.Context, svc, reportType, spec, format, c.Int("limit"))
		if err != nil {
			return err
		}

		outDir := c.String("output-dir")
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outPath := filepath.Join(outDir, artifact.Filename)
		if err := os.WriteFile(outPath, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Printf("Report written to %s (%d bytes)", outPath, len(artifact.Data))

		if c.Bool("upload") {
			if err := uploadArtifact(c.Context, artifact); err != nil {
				return err
			}
		}
		return nil
	}
}

func renderReport(ctx context.Context, svc *service.ReportService, reportType string, spec report.PeriodSpec, format export.Format, limit int) (*export.Artifact, error) {
	switch reportType {
	case "sales":
		rep, err := svc.SalesReport(ctx, spec, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to build sales report: %w", err)
		}
		return export.SalesReport(*rep, format)
	case "inventory":
		rep, err := svc.InventoryReport(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build inventory report: %w", err)
		}
		return export.InventoryReport(*rep, format)
	case "financial":
		rep, err := svc.FinancialReport(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("failed to build financial report: %w", err)
		}
		return export.FinancialReport(*rep, format)
	}
	return nil, fmt.Errorf("unknown report type %q", reportType)
}

func newStorageClient() (*storage.MinioClient, error) {
	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Bucket:    envOrDefault("STORAGE_BUCKET", "botica-exports"),
		Region:    envOrDefault("STORAGE_REGION", "us-east-1"),
		UseSSL:    os.Getenv("STORAGE_USE_SSL") != "false",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	return client, nil
}

func uploadArtifact(ctx context.Context, artifact *export.Artifact) error {
	client, err := newStorageClient()
	if err != nil {
		return err
	}

	key := "exports/" + artifact.Filename
	if err := client.UploadObject(ctx, key, artifact.ContentType, artifact.Data); err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	log.Printf("Report uploaded to %s", key)
	return nil
}

func fetchExport(c *cli.Context) error {
	client, err := newStorageClient()
	if err != nil {
		return err
	}

	key := c.String("key")
	destPath := filepath.Join(c.String("output-dir"), filepath.Base(key))
	if err := client.DownloadObject(c.Context, key, destPath); err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}

	log.Printf("Downloaded %s to %s", key, destPath)
	return nil
}

func seedAdmin(c *cli.Context) error {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	svc := service.NewUserService(postgres.NewUserRepository(postgres.WrapDB(db)))
	user, err := svc.CreateUser(c.Context, domain.CreateUserRequest{
		Username: c.String("username"),
		FullName: c.String("full-name"),
		Password: c.String("password"),
		Role:     domain.RoleAdmin,
	}, "reportgen")
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Admin user %s created (id %s)", user.Username, user.ID)
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
