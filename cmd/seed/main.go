// Package main seeds the database with a demo company, its reference records,
// two employees and a sample offer letter template.
//
// Usage:
//
//	go run ./cmd/seed -data-path ~/HRDocs/data
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peoplehub/hrdocs/internal/config"
	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/logger"
	"github.com/peoplehub/hrdocs/internal/search"
	"github.com/peoplehub/hrdocs/internal/service"
	"github.com/peoplehub/hrdocs/internal/store/sqlite"
	"github.com/peoplehub/hrdocs/internal/validation"
)

const offerLetter = `<h1>Offer of Employment</h1>
<p><<Current Date>></p>
<p>Dear <<First Name>>,</p>
<p><<Company Name>> is pleased to offer you the position of <strong><<Job Title>></strong>
in the <<Department>> department, reporting to <<Manager Name>>, starting <<Start Date>>.</p>
<p>Your monthly package is <<Total Package>> <<Currency>>: basic salary <<Basic Salary>>
and allowances of <<Total Allowances>>.</p>
<p>This offer is valid until <<Offer Expiry Date>>.</p>
<p><<Signatory Name>><br><<Signatory Title>></p>
`

const experienceCertificate = `TO WHOM IT MAY CONCERN

This is to certify that <<Full Name>> (<<Employee ID>>) worked with <<Company Legal Name>>
as <<Job Title>> from <<Start Date>> to <<End Date>>.

<<Signatory Name>>, <<Signatory Title>>
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	st, err := sqlite.Open(cfg.Data.DatabasePath, log.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	index, err := search.NewTagIndex(log.Logger)
	if err != nil {
		return err
	}
	defer index.Close()

	catalog := service.NewCatalogService(st, index, validation.New(), log.Logger)
	added, err := catalog.SeedSystemTags(ctx)
	if err != nil {
		return err
	}
	log.Info("System tags seeded", "added", added)

	if err := seedRecords(ctx, st); err != nil {
		return err
	}
	log.Info("Demo records seeded", "db", cfg.Data.DatabasePath)

	if err := writeTemplate(cfg.Data.TemplatePath, "offer_letter.html", offerLetter); err != nil {
		return err
	}
	if err := writeTemplate(cfg.Data.TemplatePath, "experience_certificate.txt", experienceCertificate); err != nil {
		return err
	}
	log.Info("Sample templates written", "dir", cfg.Data.TemplatePath)

	return nil
}

func seedRecords(ctx context.Context, st *sqlite.Store) error {
	company := &domain.Company{
		ID:                 "co-demo",
		Name:               "Gulf Ledger",
		LegalName:          "Gulf Ledger Accounting W.L.L.",
		Street:             "Building 1021, Road 3621",
		City:               "Manama",
		Country:            "Bahrain",
		Phone:              "+973 1700 0000",
		Email:              "hr@gulfledger.example",
		Website:            "https://gulfledger.example",
		RegistrationNumber: "CR-123456",
		Currency:           "BHD",
		SignatoryName:      "Layla Haddad",
		SignatoryTitle:     "HR Director",
	}
	if err := st.UpsertCompany(ctx, company); err != nil {
		return fmt.Errorf("company: %w", err)
	}
	if err := st.UpsertPosition(ctx, &domain.Position{ID: "pos-acct", Title: "Accountant", Code: "FIN-ACC", Grade: "G5"}); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	if err := st.UpsertPosition(ctx, &domain.Position{ID: "pos-mgr", Title: "Finance Manager", Code: "FIN-MGR", Grade: "G8"}); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	if err := st.UpsertDepartment(ctx, &domain.Department{ID: "dep-fin", Name: "Finance", Code: "FIN"}); err != nil {
		return fmt.Errorf("department: %w", err)
	}
	if err := st.UpsertWorkLocation(ctx, &domain.WorkLocation{ID: "loc-hq", Name: "Head Office", Address: "Seef District, Manama"}); err != nil {
		return fmt.Errorf("work location: %w", err)
	}

	manager := &domain.Employee{
		ID:             "emp-demo-mgr",
		CompanyID:      company.ID,
		EmployeeNumber: "E-0001",
		FirstName:      "Yusuf",
		LastName:       "Rahman",
		Email:          "yusuf.rahman@gulfledger.example",
		HireDate:       ptr("2019-01-06"),
		PositionID:     "pos-mgr",
		DepartmentID:   "dep-fin",
		WorkLocationID: "loc-hq",
	}
	if err := st.UpsertEmployee(ctx, manager); err != nil {
		return fmt.Errorf("manager: %w", err)
	}

	employee := &domain.Employee{
		ID:                 "emp-demo-1",
		CompanyID:          company.ID,
		EmployeeNumber:     "E-1001",
		FirstName:          "Amina",
		LastName:           "Khalil",
		Email:              "amina.khalil@gulfledger.example",
		Nationality:        "Bahraini",
		HireDate:           ptr("2026-03-01"),
		EmploymentType:     "Full-time",
		PositionID:         "pos-acct",
		DepartmentID:       "dep-fin",
		WorkLocationID:     "loc-hq",
		ManagerID:          manager.ID,
		Salary:             ptr(1500.0),
		BasicSalary:        ptr(1100.0),
		HousingAllowance:   ptr(300.0),
		TransportAllowance: ptr(100.0),
	}
	if err := st.UpsertEmployee(ctx, employee); err != nil {
		return fmt.Errorf("employee: %w", err)
	}
	return nil
}

// writeTemplate creates a template file unless one with that name exists.
func writeTemplate(dir, name, body string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

func ptr[T any](v T) *T { return &v }
