package catalog

import contractx "github.com/openroadai/canam-assist/gateway/contract"

// recommendFromRules maps a rider profile onto the lineup. Shared by both
// catalog implementations; the recommendation logic is product policy, not
// stored data.
func recommendFromRules(profile contractx.RiderProfile) contractx.Recommendation {
	rec := contractx.Recommendation{Year: contractx.DefaultModelYear}

	switch {
	case profile.Experience == "new":
		rec.Model = "Ryker"
		rec.Reasons = append(rec.Reasons,
			"twist-and-go transmission with no clutch or shifting",
			"lowest cost of entry in the lineup")
		if profile.RideType == "touring" {
			rec.Reasons = append(rec.Reasons, "add the Max mount for a passenger seat")
		}
	case profile.RideType == "touring" && profile.ComfortPriority:
		rec.Model = "Spyder RT"
		rec.Trim = "Limited"
		rec.Reasons = append(rec.Reasons,
			"integrated luggage and passenger comfort for long trips",
			"tallest wind protection in the lineup")
	case profile.RideType == "touring":
		rec.Model = "Spyder F3"
		rec.Trim = "Limited"
		rec.Reasons = append(rec.Reasons,
			"cruiser ergonomics with available saddlebags",
			"1330 ACE engine suited to two-up riding")
	case profile.RideType == "commute":
		rec.Model = "Ryker"
		rec.Reasons = append(rec.Reasons,
			"light, nimble and inexpensive to run",
			"ECO mode stretches fuel between fill-ups")
	default:
		rec.Model = "Spyder F3"
		rec.Reasons = append(rec.Reasons,
			"sporty riding position with the full-power 1330 ACE engine",
			"balance of performance and comfort for solo riding")
	}

	return rec
}
