package types

// Region is an administrative region an inverter is installed in.
type Region struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// City is a settlement inside a Region.
type City struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Region Region `json:"region"`
}

// Inverter is one remote device with its latest telemetry summary.
type Inverter struct {
	ID               InverterID `json:"id"`
	Title            string     `json:"title"`
	DeviceType       string     `json:"device_type"`
	Address          string     `json:"address"`
	Owner            string     `json:"owner"`
	BatterySize      *float64   `json:"battery_size"`
	InverterMaxPower *float64   `json:"inverter_max_power"`
	SolarMaxPower    *float64   `json:"solar_max_power"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Region           Region     `json:"region"`
	City             City       `json:"city"`
	PowerStation     string     `json:"power_station"`
	PartnerLogo      *string    `json:"partner_logo"`
	LatestData       string     `json:"latest_data"`
}

// EnergyData is a single telemetry sample reported by an inverter.
type EnergyData struct {
	ID           int     `json:"id"`
	DataTypeKey  string  `json:"data_type_key"`
	DataTypeName string  `json:"data_type_name"`
	Value        float64 `json:"value"`
	Measure      string  `json:"measure"`
	CreatedAt    string  `json:"created_at"`
}

// DataType describes a telemetry channel.
type DataType struct {
	FoundKey *string `json:"found_key"`
	Title    string  `json:"title"`
	Measure  string  `json:"measure"`
}

// DashboardStats aggregates the fleet visible to the current account.
type DashboardStats struct {
	TotalInverters int     `json:"total_inverters"`
	TotalPower     float64 `json:"total_power"`
	TotalEnergy    float64 `json:"total_energy"`
}
