// Package compose renders deterministic answers: one catalog call per
// intent, fixed-template strings. A missing required entity degrades to a
// guidance message without touching any collaborator; only genuine catalog
// faults propagate.
package compose

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/openroadai/canam-assist/gateway/contract"
	dealersx "github.com/openroadai/canam-assist/gateway/dealers"
	routerx "github.com/openroadai/canam-assist/gateway/router"
)

const (
	guidanceModel = "Which model are you asking about? Try including Ryker, Spyder F3, Spyder RT or Canyon in your question."
	guidanceZip   = "Please include a 5-digit ZIP code so I can look up dealers near you."
)

// Composer renders each intent against the catalog; the dealer intent goes
// through the dealer finder instead.
type Composer struct {
	catalog contractx.Catalog
	finder  *dealersx.Finder
}

func New(catalog contractx.Catalog, finder *dealersx.Finder) *Composer {
	return &Composer{catalog: catalog, finder: finder}
}

// Render answers a routed question. The returned Answer always carries the
// deterministic source.
func (c *Composer) Render(ctx context.Context, route routerx.Route) (contractx.Answer, error) {
	var (
		text string
		err  error
	)

	switch route.Intent {
	case contractx.IntentSpec:
		text, err = c.renderSpec(ctx, route.Entities)
	case contractx.IntentFluids:
		text, err = c.renderFluids(ctx, route.Entities)
	case contractx.IntentTires:
		text, err = c.renderTires(ctx, route.Entities)
	case contractx.IntentMaintenance:
		text, err = c.renderMaintenance(ctx, route.Entities)
	case contractx.IntentDealer:
		text, err = c.renderDealers(ctx, route.Entities)
	case contractx.IntentParts:
		text, err = c.renderParts(ctx, route.Entities)
	case contractx.IntentAccessory:
		text, err = c.renderAccessories(ctx, route.Entities)
	case contractx.IntentRecommend:
		text, err = c.renderRecommendation(ctx, route.Profile)
	default:
		text = guidanceModel
	}
	if err != nil {
		return contractx.Answer{}, err
	}

	return contractx.Answer{Text: text, Source: contractx.SourceDeterministic}, nil
}

func (c *Composer) renderSpec(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Model == "" {
		return guidanceModel, nil
	}
	sheet, err := c.catalog.SpecSheet(ctx, e.Model, e.Year, "")
	if err != nil {
		return "", err
	}
	text := fmt.Sprintf("The %d %s runs a %s making %d hp and %s. It weighs %s dry with a %s seat height.",
		sheet.Year, sheet.Model, sheet.Engine, sheet.Horsepower, sheet.Torque, sheet.DryWeight, sheet.SeatHeight)
	if len(sheet.Electronics) > 0 {
		text += " Standard electronics: " + strings.Join(sheet.Electronics, ", ") + "."
	}
	return text, nil
}

func (c *Composer) renderFluids(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Model == "" {
		return guidanceModel, nil
	}
	fluids, err := c.catalog.FluidsTorque(ctx, e.Model, e.Year, e.Subsystem)
	if err != nil {
		return "", err
	}

	capacities := make([]string, 0, len(fluids.Capacities))
	for _, fc := range fluids.Capacities {
		line := fmt.Sprintf("%s %s", fc.Fluid, fc.Capacity)
		if fc.Spec != "" {
			line += " (" + fc.Spec + ")"
		}
		capacities = append(capacities, line)
	}
	text := fmt.Sprintf("%d %s fluids: %s.", fluids.Year, fluids.Model, strings.Join(capacities, "; "))

	if len(fluids.Torques) > 0 {
		torques := make([]string, 0, len(fluids.Torques))
		for _, t := range fluids.Torques {
			torques = append(torques, fmt.Sprintf("%s %s", t.Fastener, t.Torque))
		}
		text += " Torque values: " + strings.Join(torques, ", ") + "."
	}
	return text, nil
}

func (c *Composer) renderTires(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Model == "" {
		return guidanceModel, nil
	}
	front, err := c.catalog.TireFitment(ctx, e.Model, e.Year, "front")
	if err != nil {
		return "", err
	}
	rear, err := c.catalog.TireFitment(ctx, e.Model, e.Year, "rear")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s tires: front %s at %s, rear %s at %s.",
		front.Year, front.Model, front.Size, front.Pressure, rear.Size, rear.Pressure), nil
}

func (c *Composer) renderMaintenance(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Model == "" {
		return guidanceModel, nil
	}
	schedule, err := c.catalog.MaintenanceSchedule(ctx, e.Model, e.Year, 0)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(schedule.Items))
	for _, item := range schedule.Items {
		lines = append(lines, fmt.Sprintf("%s: %s", item.Interval, strings.Join(item.Tasks, ", ")))
	}
	return fmt.Sprintf("%d %s maintenance schedule — %s.", schedule.Year, schedule.Model, strings.Join(lines, " | ")), nil
}

func (c *Composer) renderDealers(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Zip == "" {
		return guidanceZip, nil
	}
	result, err := c.finder.Find(ctx, dealersx.Search{Location: e.Zip})
	if err != nil {
		return "", err
	}
	if len(result.Dealers) == 0 {
		if result.Note != "" {
			return result.Note, nil
		}
		return fmt.Sprintf("No Can-Am dealers found near %s.", e.Zip), nil
	}

	lines := make([]string, 0, len(result.Dealers))
	for _, d := range result.Dealers {
		line := d.Name
		if d.Address != "" {
			line += ", " + d.Address
		}
		if d.Phone != "" {
			line += ", " + d.Phone
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("Dealers near %s: %s.", e.Zip, strings.Join(lines, " | ")), nil
}

func (c *Composer) renderParts(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Model == "" {
		return guidanceModel, nil
	}
	result, err := c.catalog.PartsLookup(ctx, e.Model, e.Year, assemblyFor(e))
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(result.Parts))
	for _, p := range result.Parts {
		line := fmt.Sprintf("%s (P/N %s", p.Name, p.PartNumber)
		if p.Price != "" {
			line += ", " + p.Price
		}
		line += ")"
		lines = append(lines, line)
	}
	return fmt.Sprintf("%d %s %s parts: %s.", result.Year, result.Model, result.Assembly, strings.Join(lines, "; ")), nil
}

func (c *Composer) renderAccessories(ctx context.Context, e contractx.Entities) (string, error) {
	if e.Model == "" {
		return guidanceModel, nil
	}
	bundle, err := c.catalog.AccessoryBundle(ctx, e.Model, e.Year, "", "")
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(bundle.Accessories))
	for _, a := range bundle.Accessories {
		line := a.Name
		if a.Price != "" {
			line += " (" + a.Price + ")"
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("Popular accessories for the %d %s: %s.", bundle.Year, bundle.Model, strings.Join(lines, "; ")), nil
}

func (c *Composer) renderRecommendation(ctx context.Context, profile contractx.RiderProfile) (string, error) {
	rec, err := c.catalog.Recommend(ctx, profile)
	if err != nil {
		return "", err
	}
	name := rec.Model
	if rec.Trim != "" {
		name += " " + rec.Trim
	}
	return fmt.Sprintf("I'd suggest the %d %s: %s.", rec.Year, name, strings.Join(rec.Reasons, "; ")), nil
}

// assemblyFor picks the parts assembly implied by the question. Oil change
// is by far the most requested lookup and is the fallback.
func assemblyFor(e contractx.Entities) string {
	switch e.Subsystem {
	case "engine", "":
		return "oil change"
	default:
		return e.Subsystem
	}
}
