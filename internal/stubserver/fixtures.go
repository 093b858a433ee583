package stubserver

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"asempv/internal/domain"
)

// Fixtures is the data set served by the stub.
type Fixtures struct {
	Users     []UserFixture     `yaml:"users"`
	Inverters []InverterFixture `yaml:"inverters"`
	DataTypes []DataTypeFixture `yaml:"data_types"`
	// SamplesPerInverter is how many energy samples each inverter reports.
	SamplesPerInverter int `yaml:"samples_per_inverter"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Partner  string `yaml:"partner"`
}

type InverterFixture struct {
	ID               int      `yaml:"id"`
	Title            string   `yaml:"title"`
	DeviceType       string   `yaml:"device_type"`
	Address          string   `yaml:"address"`
	Owner            string   `yaml:"owner"`
	Partner          string   `yaml:"partner"`
	BatterySize      *float64 `yaml:"battery_size"`
	InverterMaxPower *float64 `yaml:"inverter_max_power"`
	SolarMaxPower    *float64 `yaml:"solar_max_power"`
	Latitude         float64  `yaml:"latitude"`
	Longitude        float64  `yaml:"longitude"`
	RegionID         int      `yaml:"region_id"`
	Region           string   `yaml:"region"`
	CityID           int      `yaml:"city_id"`
	City             string   `yaml:"city"`
	PowerStation     string   `yaml:"power_station"`
}

type DataTypeFixture struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Measure string `yaml:"measure"`
}

// LoadFixtures reads a YAML fixture file.
func LoadFixtures(path string) (Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, err
	}
	var f Fixtures
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return f, f.validate()
}

// DefaultFixtures generates n inverters spread over three regions, the
// standard telemetry channels and a single demo user.
func DefaultFixtures(n int) Fixtures {
	regions := []struct {
		id         int
		name, city string
	}{
		{1, "Kyivska", "Kyiv"},
		{2, "Lvivska", "Lviv"},
		{3, "Odeska", "Odesa"},
	}
	f := Fixtures{
		Users: []UserFixture{{Username: "demo", Password: "demo", Partner: "escoua"}},
		DataTypes: []DataTypeFixture{
			{Key: "pv_power", Title: "PV power", Measure: "W"},
			{Key: "grid_power", Title: "Grid power", Measure: "W"},
			{Key: "battery_soc", Title: "Battery charge", Measure: "%"},
			{Key: "load_power", Title: "Load power", Measure: "W"},
		},
		SamplesPerInverter: 30,
	}
	for i := 1; i <= n; i++ {
		r := regions[i%len(regions)]
		maxPower := float64(5 + i%20)
		f.Inverters = append(f.Inverters, InverterFixture{
			ID:               i,
			Title:            fmt.Sprintf("Inverter %03d", i),
			DeviceType:       "hybrid",
			Address:          fmt.Sprintf("%s, street %d", r.city, i),
			Owner:            fmt.Sprintf("owner-%d", i%7),
			Partner:          "escoua",
			InverterMaxPower: &maxPower,
			Latitude:         50 + float64(i%10)/10,
			Longitude:        30 + float64(i%10)/10,
			RegionID:         r.id,
			Region:           r.name,
			CityID:           r.id * 10,
			City:             r.city,
			PowerStation:     "home",
		})
	}
	return f
}

func (f Fixtures) validate() error {
	seen := make(map[int]bool, len(f.Inverters))
	for _, inv := range f.Inverters {
		if inv.ID <= 0 {
			return fmt.Errorf("inverter %q: id must be positive", inv.Title)
		}
		if seen[inv.ID] {
			return fmt.Errorf("inverter %d: duplicate id", inv.ID)
		}
		seen[inv.ID] = true
	}
	for _, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" || u.Password == "" {
			return fmt.Errorf("user fixture needs username and password")
		}
	}
	return nil
}

func (i InverterFixture) inverter() domain.Inverter {
	region := domain.Region{ID: i.RegionID, Title: i.Region}
	return domain.Inverter{
		ID:               domain.InverterID(i.ID),
		Title:            i.Title,
		DeviceType:       i.DeviceType,
		Address:          i.Address,
		Owner:            i.Owner,
		BatterySize:      i.BatterySize,
		InverterMaxPower: i.InverterMaxPower,
		SolarMaxPower:    i.SolarMaxPower,
		Latitude:         i.Latitude,
		Longitude:        i.Longitude,
		Region:           region,
		City:             domain.City{ID: i.CityID, Title: i.City, Region: region},
		PowerStation:     i.PowerStation,
	}
}

func (d DataTypeFixture) dataType() domain.DataType {
	key := d.Key
	return domain.DataType{FoundKey: &key, Title: d.Title, Measure: d.Measure}
}

// hashUsers replaces plaintext fixture passwords with bcrypt hashes.
func hashUsers(users []UserFixture, cost int) (map[string]user, error) {
	out := make(map[string]user, len(users))
	for _, u := range users {
		h, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		out[u.Username] = user{name: u.Username, partner: u.Partner, hash: h}
	}
	return out, nil
}

type user struct {
	name    string
	partner string
	hash    []byte
}

func (u user) check(password string) bool {
	return bcrypt.CompareHashAndPassword(u.hash, []byte(password)) == nil
}
