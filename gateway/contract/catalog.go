package contract

// Catalog payload shapes. The narrow per-intent endpoints return these
// directly; the answer composer renders them into fixed-template strings.

type SpecSheet struct {
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Trim        string   `json:"trim,omitempty"`
	Engine      string   `json:"engine"`
	Horsepower  int      `json:"horsepower"`
	Torque      string   `json:"torque"`
	DryWeight   string   `json:"dry_weight"`
	SeatHeight  string   `json:"seat_height"`
	Electronics []string `json:"electronics,omitempty"`
}

type FluidCapacity struct {
	Fluid    string `json:"fluid"`
	Capacity string `json:"capacity"`
	Spec     string `json:"spec,omitempty"`
}

type TorqueValue struct {
	Fastener string `json:"fastener"`
	Torque   string `json:"torque"`
}

type FluidsTorque struct {
	Model      string          `json:"model"`
	Year       int             `json:"year"`
	Capacities []FluidCapacity `json:"capacities"`
	Torques    []TorqueValue   `json:"torques,omitempty"`
}

type TireFitment struct {
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Axle     string `json:"axle"`
	Size     string `json:"size"`
	Pressure string `json:"pressure"`
}

type MaintenanceItem struct {
	Interval string   `json:"interval"`
	Tasks    []string `json:"tasks"`
}

type MaintenanceSchedule struct {
	Model string            `json:"model"`
	Year  int               `json:"year"`
	Items []MaintenanceItem `json:"items"`
}

type Part struct {
	Name       string `json:"name"`
	PartNumber string `json:"part_number"`
	Price      string `json:"price,omitempty"`
}

type PartsResult struct {
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Assembly string `json:"assembly"`
	Parts    []Part `json:"parts"`
}

type Accessory struct {
	Name  string `json:"name"`
	Price string `json:"price,omitempty"`
}

type AccessoryBundle struct {
	Model       string      `json:"model"`
	Year        int         `json:"year"`
	UseCase     string      `json:"use_case"`
	Accessories []Accessory `json:"accessories"`
}

type Recommendation struct {
	Model   string   `json:"model"`
	Trim    string   `json:"trim,omitempty"`
	Year    int      `json:"year"`
	Reasons []string `json:"reasons"`
}
