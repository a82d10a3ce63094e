package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/peoplehub/hrdocs/internal/domain"
	"github.com/peoplehub/hrdocs/internal/store"
)

// UpsertCompany inserts or replaces a company.
func (s *Store) UpsertCompany(ctx context.Context, c *domain.Company) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (
			id, name, legal_name, street, city, state, zip, country, phone, email,
			website, registration_number, logo_url, currency, signatory_name, signatory_title
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			legal_name = excluded.legal_name,
			street = excluded.street,
			city = excluded.city,
			state = excluded.state,
			zip = excluded.zip,
			country = excluded.country,
			phone = excluded.phone,
			email = excluded.email,
			website = excluded.website,
			registration_number = excluded.registration_number,
			logo_url = excluded.logo_url,
			currency = excluded.currency,
			signatory_name = excluded.signatory_name,
			signatory_title = excluded.signatory_title`,
		c.ID, c.Name,
		nullString(c.LegalName),
		nullString(c.Street),
		nullString(c.City),
		nullString(c.State),
		nullString(c.Zip),
		nullString(c.Country),
		nullString(c.Phone),
		nullString(c.Email),
		nullString(c.Website),
		nullString(c.RegistrationNumber),
		nullString(c.LogoURL),
		nullString(c.Currency),
		nullString(c.SignatoryName),
		nullString(c.SignatoryTitle),
	)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}

// UpsertPosition inserts or replaces a position.
func (s *Store) UpsertPosition(ctx context.Context, p *domain.Position) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (id, title, code, grade) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, code = excluded.code, grade = excluded.grade`,
		p.ID, p.Title, nullString(p.Code), nullString(p.Grade),
	)
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}
	return nil
}

// UpsertDepartment inserts or replaces a department.
func (s *Store) UpsertDepartment(ctx context.Context, d *domain.Department) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO departments (id, name, code) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, code = excluded.code`,
		d.ID, d.Name, nullString(d.Code),
	)
	if err != nil {
		return fmt.Errorf("upsert department: %w", err)
	}
	return nil
}

// UpsertWorkLocation inserts or replaces a work location.
func (s *Store) UpsertWorkLocation(ctx context.Context, w *domain.WorkLocation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_locations (id, name, address) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, address = excluded.address`,
		w.ID, w.Name, nullString(w.Address),
	)
	if err != nil {
		return fmt.Errorf("upsert work location: %w", err)
	}
	return nil
}

const employeeColumns = `id, company_id, employee_number, first_name, last_name, full_name,
	email, phone, nationality, national_id, employment_type, date_of_birth, hire_date, end_date,
	position_id, department_id, work_location_id, manager_id, salary, currency, basic_salary,
	housing_allowance, transport_allowance, other_allowance, total_allowances, created_at, updated_at`

// UpsertEmployee inserts or replaces an employee. Referenced records must exist.
func (s *Store) UpsertEmployee(ctx context.Context, e *domain.Employee) error {
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id,
			employee_number = excluded.employee_number,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			nationality = excluded.nationality,
			national_id = excluded.national_id,
			employment_type = excluded.employment_type,
			date_of_birth = excluded.date_of_birth,
			hire_date = excluded.hire_date,
			end_date = excluded.end_date,
			position_id = excluded.position_id,
			department_id = excluded.department_id,
			work_location_id = excluded.work_location_id,
			manager_id = excluded.manager_id,
			salary = excluded.salary,
			currency = excluded.currency,
			basic_salary = excluded.basic_salary,
			housing_allowance = excluded.housing_allowance,
			transport_allowance = excluded.transport_allowance,
			other_allowance = excluded.other_allowance,
			total_allowances = excluded.total_allowances,
			updated_at = excluded.updated_at`,
		e.ID,
		nullString(e.CompanyID),
		nullString(e.EmployeeNumber),
		e.FirstName,
		e.LastName,
		nullString(e.FullName),
		nullString(e.Email),
		nullString(e.Phone),
		nullString(e.Nationality),
		nullString(e.NationalID),
		nullString(e.EmploymentType),
		nullableString(e.DateOfBirth),
		nullableString(e.HireDate),
		nullableString(e.EndDate),
		nullString(e.PositionID),
		nullString(e.DepartmentID),
		nullString(e.WorkLocationID),
		nullString(e.ManagerID),
		nullableFloat(e.Salary),
		nullString(e.Currency),
		nullableFloat(e.BasicSalary),
		nullableFloat(e.HousingAllowance),
		nullableFloat(e.TransportAllowance),
		nullableFloat(e.OtherAllowance),
		nullableFloat(e.TotalAllowances),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert employee: %w", err)
	}
	return nil
}

func scanEmployee(scanner interface{ Scan(dest ...any) error }) (*domain.Employee, error) {
	var (
		e                                                    domain.Employee
		companyID, number, fullName, email, phone            sql.NullString
		nationality, nationalID, employmentType, currency    sql.NullString
		dob, hireDate, endDate                               sql.NullString
		positionID, departmentID, workLocationID, managerID  sql.NullString
		salary, basic, housing, transport, other, allowances sql.NullFloat64
		createdAt, updatedAt                                 string
	)

	err := scanner.Scan(
		&e.ID, &companyID, &number, &e.FirstName, &e.LastName, &fullName,
		&email, &phone, &nationality, &nationalID, &employmentType, &dob, &hireDate, &endDate,
		&positionID, &departmentID, &workLocationID, &managerID, &salary, &currency, &basic,
		&housing, &transport, &other, &allowances, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.CompanyID = companyID.String
	e.EmployeeNumber = number.String
	e.FullName = fullName.String
	e.Email = email.String
	e.Phone = phone.String
	e.Nationality = nationality.String
	e.NationalID = nationalID.String
	e.EmploymentType = employmentType.String
	e.DateOfBirth = stringPtr(dob)
	e.HireDate = stringPtr(hireDate)
	e.EndDate = stringPtr(endDate)
	e.PositionID = positionID.String
	e.DepartmentID = departmentID.String
	e.WorkLocationID = workLocationID.String
	e.ManagerID = managerID.String
	e.Salary = floatPtr(salary)
	e.Currency = currency.String
	e.BasicSalary = floatPtr(basic)
	e.HousingAllowance = floatPtr(housing)
	e.TransportAllowance = floatPtr(transport)
	e.OtherAllowance = floatPtr(other)
	e.TotalAllowances = floatPtr(allowances)

	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEmployee retrieves an employee by ID.
// Returns store.ErrNotFound if the employee does not exist.
func (s *Store) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// LoadRenderData gathers an employee with its company, position, department,
// work location and manager. Dangling references leave the group empty.
func (s *Store) LoadRenderData(ctx context.Context, employeeID string) (*domain.RenderData, error) {
	e, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	data := &domain.RenderData{Employee: e}

	if e.CompanyID != "" {
		if data.Company, err = s.getCompany(ctx, e.CompanyID); err != nil {
			return nil, err
		}
	}
	if e.PositionID != "" {
		if data.Position, err = s.getPosition(ctx, e.PositionID); err != nil {
			return nil, err
		}
	}
	if e.DepartmentID != "" {
		if data.Department, err = s.getDepartment(ctx, e.DepartmentID); err != nil {
			return nil, err
		}
	}
	if e.WorkLocationID != "" {
		if data.WorkLocation, err = s.getWorkLocation(ctx, e.WorkLocationID); err != nil {
			return nil, err
		}
	}
	if e.ManagerID != "" && e.ManagerID != e.ID {
		m, err := s.GetEmployee(ctx, e.ManagerID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		data.Manager = m
	}

	return data, nil
}

func (s *Store) getCompany(ctx context.Context, id string) (*domain.Company, error) {
	var (
		c                                          domain.Company
		legal, street, city, state, zip, country   sql.NullString
		phone, email, website, reg, logo, currency sql.NullString
		signatory, signatoryTitle                  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, legal_name, street, city, state, zip, country, phone, email,
			website, registration_number, logo_url, currency, signatory_name, signatory_title
		FROM companies WHERE id = ?`, id).Scan(
		&c.ID, &c.Name, &legal, &street, &city, &state, &zip, &country, &phone, &email,
		&website, &reg, &logo, &currency, &signatory, &signatoryTitle,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.LegalName = legal.String
	c.Street = street.String
	c.City = city.String
	c.State = state.String
	c.Zip = zip.String
	c.Country = country.String
	c.Phone = phone.String
	c.Email = email.String
	c.Website = website.String
	c.RegistrationNumber = reg.String
	c.LogoURL = logo.String
	c.Currency = currency.String
	c.SignatoryName = signatory.String
	c.SignatoryTitle = signatoryTitle.String
	return &c, nil
}

func (s *Store) getPosition(ctx context.Context, id string) (*domain.Position, error) {
	var (
		p           domain.Position
		code, grade sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, code, grade FROM positions WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &code, &grade)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	p.Code = code.String
	p.Grade = grade.String
	return &p, nil
}

func (s *Store) getDepartment(ctx context.Context, id string) (*domain.Department, error) {
	var (
		d    domain.Department
		code sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, code FROM departments WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}
	d.Code = code.String
	return &d, nil
}

func (s *Store) getWorkLocation(ctx context.Context, id string) (*domain.WorkLocation, error) {
	var (
		w       domain.WorkLocation
		address sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, address FROM work_locations WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get work location: %w", err)
	}
	w.Address = address.String
	return &w, nil
}
