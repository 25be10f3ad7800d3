// Package catalog provides the read-only product knowledge base behind the
// contract.Catalog interface: an embedded static catalog for default and
// test use, and an optional Postgres-backed one.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
)

//go:embed data/catalog.json
var catalogRaw []byte

type modelEntry struct {
	Model string `json:"model"`
	Years []int  `json:"years"`
	Spec  struct {
		Engine      string   `json:"engine"`
		Horsepower  int      `json:"horsepower"`
		Torque      string   `json:"torque"`
		DryWeight   string   `json:"dry_weight"`
		SeatHeight  string   `json:"seat_height"`
		Electronics []string `json:"electronics"`
	} `json:"spec"`
	Fluids struct {
		Capacities []contractx.FluidCapacity `json:"capacities"`
		Torques    []contractx.TorqueValue   `json:"torques"`
	} `json:"fluids"`
	Tires map[string]struct {
		Size     string `json:"size"`
		Pressure string `json:"pressure"`
	} `json:"tires"`
	Maintenance []contractx.MaintenanceItem    `json:"maintenance"`
	Parts       map[string][]contractx.Part    `json:"parts"`
	Accessories map[string][]contractx.Accessory `json:"accessories"`
}

type catalogFile struct {
	Models []modelEntry `json:"models"`
}

// Static serves lookups from the embedded catalog file.
type Static struct {
	models []modelEntry
}

var _ contractx.Catalog = (*Static)(nil)

// NewStatic parses the embedded catalog. The embed is compile-time, so a
// parse failure is a packaging bug and surfaces at startup.
func NewStatic() (*Static, error) {
	var file catalogFile
	if err := json.Unmarshal(catalogRaw, &file); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return &Static{models: file.Models}, nil
}

func (s *Static) lookup(model string, year int) (modelEntry, error) {
	for _, entry := range s.models {
		if !strings.EqualFold(entry.Model, model) {
			continue
		}
		for _, y := range entry.Years {
			if y == year {
				return entry, nil
			}
		}
	}
	return modelEntry{}, fmt.Errorf("%w: model=%s year=%d", contractx.ErrCatalogNotFound, model, year)
}

func (s *Static) SpecSheet(ctx context.Context, model string, year int, trim string) (contractx.SpecSheet, error) {
	entry, err := s.lookup(model, year)
	if err != nil {
		return contractx.SpecSheet{}, err
	}
	return contractx.SpecSheet{
		Model:       entry.Model,
		Year:        year,
		Trim:        trim,
		Engine:      entry.Spec.Engine,
		Horsepower:  entry.Spec.Horsepower,
		Torque:      entry.Spec.Torque,
		DryWeight:   entry.Spec.DryWeight,
		SeatHeight:  entry.Spec.SeatHeight,
		Electronics: entry.Spec.Electronics,
	}, nil
}

func (s *Static) FluidsTorque(ctx context.Context, model string, year int, system string) (contractx.FluidsTorque, error) {
	entry, err := s.lookup(model, year)
	if err != nil {
		return contractx.FluidsTorque{}, err
	}
	out := contractx.FluidsTorque{
		Model:      entry.Model,
		Year:       year,
		Capacities: entry.Fluids.Capacities,
		Torques:    entry.Fluids.Torques,
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

func (s *Static) TireFitment(ctx context.Context, model string, year int, axle string) (contractx.TireFitment, error) {
	entry, err := s.lookup(model, year)
	if err != nil {
		return contractx.TireFitment{}, err
	}
	axle = strings.ToLower(strings.TrimSpace(axle))
	if axle == "" {
		axle = "front"
	}
	tire, ok := entry.Tires[axle]
	if !ok {
		return contractx.TireFitment{}, fmt.Errorf("%w: model=%s axle=%s", contractx.ErrCatalogNotFound, model, axle)
	}
	return contractx.TireFitment{
		Model:    entry.Model,
		Year:     year,
		Axle:     axle,
		Size:     tire.Size,
		Pressure: tire.Pressure,
	}, nil
}

func (s *Static) MaintenanceSchedule(ctx context.Context, model string, year int, miles int) (contractx.MaintenanceSchedule, error) {
	entry, err := s.lookup(model, year)
	if err != nil {
		return contractx.MaintenanceSchedule{}, err
	}
	return contractx.MaintenanceSchedule{
		Model: entry.Model,
		Year:  year,
		Items: entry.Maintenance,
	}, nil
}

func (s *Static) PartsLookup(ctx context.Context, model string, year int, assembly string) (contractx.PartsResult, error) {
	entry, err := s.lookup(model, year)
	if err != nil {
		return contractx.PartsResult{}, err
	}
	assembly = strings.ToLower(strings.TrimSpace(assembly))
	parts, ok := entry.Parts[assembly]
	if !ok {
		return contractx.PartsResult{}, fmt.Errorf("%w: model=%s assembly=%s", contractx.ErrCatalogNotFound, model, assembly)
	}
	return contractx.PartsResult{
		Model:    entry.Model,
		Year:     year,
		Assembly: assembly,
		Parts:    parts,
	}, nil
}

func (s *Static) AccessoryBundle(ctx context.Context, model string, year int, useCase string, budget string) (contractx.AccessoryBundle, error) {
	entry, err := s.lookup(model, year)
	if err != nil {
		return contractx.AccessoryBundle{}, err
	}
	useCase = strings.ToLower(strings.TrimSpace(useCase))
	accessories, ok := entry.Accessories[useCase]
	if !ok {
		useCase = "default"
		accessories, ok = entry.Accessories[useCase]
	}
	if !ok {
		return contractx.AccessoryBundle{}, fmt.Errorf("%w: model=%s accessories", contractx.ErrCatalogNotFound, model)
	}
	return contractx.AccessoryBundle{
		Model:       entry.Model,
		Year:        year,
		UseCase:     useCase,
		Accessories: accessories,
	}, nil
}

func (s *Static) Recommend(ctx context.Context, profile contractx.RiderProfile) (contractx.Recommendation, error) {
	return recommendFromRules(profile), nil
}
