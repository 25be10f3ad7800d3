package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

// Postgres serves the same lookups as Static from a product database. Rows
// mirror the catalog payload shapes, with nested lists kept as jsonb.
type Postgres struct {
	db *bun.DB
}

var _ contractx.Catalog = (*Postgres)(nil)

type specRow struct {
	bun.BaseModel `bun:"table:spec_sheets"`

	Model       string   `bun:"model"`
	Year        int      `bun:"year"`
	Trim        string   `bun:"trim"`
	Engine      string   `bun:"engine"`
	Horsepower  int      `bun:"horsepower"`
	Torque      string   `bun:"torque"`
	DryWeight   string   `bun:"dry_weight"`
	SeatHeight  string   `bun:"seat_height"`
	Electronics []string `bun:"electronics,type:jsonb"`
}

type fluidsRow struct {
	bun.BaseModel `bun:"table:fluids_torque"`

	Model      string                    `bun:"model"`
	Year       int                       `bun:"year"`
	Capacities []contractx.FluidCapacity `bun:"capacities,type:jsonb"`
	Torques    []contractx.TorqueValue   `bun:"torques,type:jsonb"`
}

type tireRow struct {
	bun.BaseModel `bun:"table:tire_fitments"`

	Model    string `bun:"model"`
	Year     int    `bun:"year"`
	Axle     string `bun:"axle"`
	Size     string `bun:"size"`
	Pressure string `bun:"pressure"`
}

type maintenanceRow struct {
	bun.BaseModel `bun:"table:maintenance_schedules"`

	Model string                      `bun:"model"`
	Year  int                         `bun:"year"`
	Items []contractx.MaintenanceItem `bun:"items,type:jsonb"`
}

type partsRow struct {
	bun.BaseModel `bun:"table:parts"`

	Model    string           `bun:"model"`
	Year     int              `bun:"year"`
	Assembly string           `bun:"assembly"`
	Parts    []contractx.Part `bun:"parts,type:jsonb"`
}

type accessoryRow struct {
	bun.BaseModel `bun:"table:accessory_bundles"`

	Model       string                `bun:"model"`
	Year        int                   `bun:"year"`
	UseCase     string                `bun:"use_case"`
	Accessories []contractx.Accessory `bun:"accessories,type:jsonb"`
}

// NewPostgres opens a pg connection from a DSN. The caller owns closing via
// Close; lookups are read-only.
func NewPostgres(dsn string) (*Postgres, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("catalog dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func wrapLookupErr(err error, model string, year int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: model=%s year=%d", contractx.ErrCatalogNotFound, model, year)
	}
	return fmt.Errorf("catalog query: %w", err)
}

func (p *Postgres) SpecSheet(ctx context.Context, model string, year int, trim string) (contractx.SpecSheet, error) {
	var row specRow
	q := p.db.NewSelect().Model(&row).
		Where("lower(model) = lower(?)", model).
		Where("year = ?", year)
	if trim = strings.TrimSpace(trim); trim != "" {
		q = q.Where("lower(trim) = lower(?)", trim)
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		return contractx.SpecSheet{}, wrapLookupErr(err, model, year)
	}
	return contractx.SpecSheet{
		Model:       row.Model,
		Year:        row.Year,
		Trim:        row.Trim,
		Engine:      row.Engine,
		Horsepower:  row.Horsepower,
		Torque:      row.Torque,
		DryWeight:   row.DryWeight,
		SeatHeight:  row.SeatHeight,
		Electronics: row.Electronics,
	}, nil
}

func (p *Postgres) FluidsTorque(ctx context.Context, model string, year int, system string) (contractx.FluidsTorque, error) {
	var row fluidsRow
	err := p.db.NewSelect().Model(&row).
		Where("lower(model) = lower(?)", model).
		Where("year = ?", year).
		Limit(1).Scan(ctx)
	if err != nil {
		return contractx.FluidsTorque{}, wrapLookupErr(err, model, year)
	}
	out := contractx.FluidsTorque{
		Model:      row.Model,
		Year:       row.Year,
		Capacities: row.Capacities,
		Torques:    row.Torques,
	}
	if system = strings.TrimSpace(system); system != "" {
		var narrowed []contractx.FluidCapacity
		for _, c := range out.Capacities {
			if strings.Contains(strings.ToLower(c.Fluid), strings.ToLower(system)) {
				narrowed = append(narrowed, c)
			}
		}
		if len(narrowed) > 0 {
			out.Capacities = narrowed
		}
	}
	return out, nil
}

func (p *Postgres) TireFitment(ctx context.Context, model string, year int, axle string) (contractx.TireFitment, error) {
	axle = strings.ToLower(strings.TrimSpace(axle))
	if axle == "" {
		axle = "front"
	}
	var row tireRow
	err := p.db.NewSelect().Model(&row).
		Where("lower(model) = lower(?)", model).
		Where("year = ?", year).
		Where("axle = ?", axle).
		Limit(1).Scan(ctx)
	if err != nil {
		return contractx.TireFitment{}, wrapLookupErr(err, model, year)
	}
	return contractx.TireFitment{
		Model:    row.Model,
		Year:     row.Year,
		Axle:     row.Axle,
		Size:     row.Size,
		Pressure: row.Pressure,
	}, nil
}

func (p *Postgres) MaintenanceSchedule(ctx context.Context, model string, year int, miles int) (contractx.MaintenanceSchedule, error) {
	var row maintenanceRow
	err := p.db.NewSelect().Model(&row).
		Where("lower(model) = lower(?)", model).
		Where("year = ?", year).
		Limit(1).Scan(ctx)
	if err != nil {
		return contractx.MaintenanceSchedule{}, wrapLookupErr(err, model, year)
	}
	return contractx.MaintenanceSchedule{
		Model: row.Model,
		Year:  row.Year,
		Items: row.Items,
	}, nil
}

func (p *Postgres) PartsLookup(ctx context.Context, model string, year int, assembly string) (contractx.PartsResult, error) {
	var row partsRow
	err := p.db.NewSelect().Model(&row).
		Where("lower(model) = lower(?)", model).
		Where("year = ?", year).
		Where("lower(assembly) = lower(?)", assembly).
		Limit(1).Scan(ctx)
	if err != nil {
		return contractx.PartsResult{}, wrapLookupErr(err, model, year)
	}
	return contractx.PartsResult{
		Model:    row.Model,
		Year:     row.Year,
		Assembly: row.Assembly,
		Parts:    row.Parts,
	}, nil
}

func (p *Postgres) AccessoryBundle(ctx context.Context, model string, year int, useCase string, budget string) (contractx.AccessoryBundle, error) {
	useCase = strings.ToLower(strings.TrimSpace(useCase))
	if useCase == "" {
		useCase = "default"
	}
	var row accessoryRow
	err := p.db.NewSelect().Model(&row).
		Where("lower(model) = lower(?)", model).
		Where("year = ?", year).
		Where("use_case IN (?, 'default')", useCase).
		OrderExpr("use_case = ? DESC", useCase).
		Limit(1).Scan(ctx)
	if err != nil {
		return contractx.AccessoryBundle{}, wrapLookupErr(err, model, year)
	}
	return contractx.AccessoryBundle{
		Model:       row.Model,
		Year:        row.Year,
		UseCase:     row.UseCase,
		Accessories: row.Accessories,
	}, nil
}

func (p *Postgres) Recommend(ctx context.Context, profile contractx.RiderProfile) (contractx.Recommendation, error) {
	return recommendFromRules(profile), nil
}
