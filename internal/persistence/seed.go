package persistence

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/metropower/dashboard/internal/domain"
)

// SeedData is the YAML fixture loaded into the in-memory backend at startup.
type SeedData struct {
	Employees   []SeedEmployee   `yaml:"employees"`
	Projects    []SeedProject    `yaml:"projects"`
	Assignments []SeedAssignment `yaml:"assignments"`
	Users       []SeedUser       `yaml:"users"`
}

type SeedEmployee struct {
	ID             string `yaml:"employee_id"`
	Name           string `yaml:"name"`
	Position       string `yaml:"position"`
	Status         string `yaml:"status"`
	EmployeeNumber string `yaml:"employee_number"`
	HireDate       string `yaml:"hire_date"`
	Phone          string `yaml:"phone"`
	Email          string `yaml:"email"`
	Notes          string `yaml:"notes"`
}

type SeedProject struct {
	ID          string   `yaml:"project_id"`
	Name        string   `yaml:"name"`
	Number      string   `yaml:"number"`
	Status      string   `yaml:"status"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Budget      *float64 `yaml:"budget"`
}

type SeedAssignment struct {
	EmployeeID string `yaml:"employee_id"`
	ProjectID  string `yaml:"project_id"`
	Date       string `yaml:"assignment_date"`
	Notes      string `yaml:"notes"`
}

// SeedUser carries a plaintext password that is hashed before storage.
type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// LoadSeed reads and decodes a seed file.
func LoadSeed(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return DecodeSeed(raw)
}

// DecodeSeed decodes seed YAML, rejecting unknown keys.
func DecodeSeed(raw []byte) (*SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &data, nil
}

// Employee converts the fixture entry, defaulting the status to Active.
func (e SeedEmployee) Employee() domain.Employee {
	status := domain.EmployeeStatus(e.Status)
	if status == "" {
		status = domain.EmployeeStatusActive
	}
	return domain.Employee{
		ID:             e.ID,
		Name:           e.Name,
		Position:       e.Position,
		Status:         status,
		EmployeeNumber: e.EmployeeNumber,
		HireDate:       e.HireDate,
		Phone:          e.Phone,
		Email:          e.Email,
		Notes:          e.Notes,
	}
}

// Project converts the fixture entry, defaulting the status to Active.
func (p SeedProject) Project() domain.Project {
	status := domain.ProjectStatus(p.Status)
	if status == "" {
		status = domain.ProjectStatusActive
	}
	return domain.Project{
		ID:          p.ID,
		Name:        p.Name,
		Number:      p.Number,
		Status:      status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Location:    p.Location,
		Description: p.Description,
		Budget:      p.Budget,
	}
}
