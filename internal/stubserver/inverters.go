package stubserver

import (
	"math"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"asempv/internal/domain"
)

type inverterFilter struct {
	city, region       *int
	partner, search    string
	minPower, maxPower *float64
}

func parseInverterFilter(c *gin.Context) (inverterFilter, bool) {
	f := inverterFilter{partner: c.Query("partner"), search: strings.ToLower(c.Query("search"))}
	ints := []struct {
		key string
		dst **int
	}{{"city", &f.city}, {"region", &f.region}}
	for _, p := range ints {
		if v := c.Query(p.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{p.key: []string{"A valid integer is required."}})
				return f, false
			}
			*p.dst = &n
		}
	}
	floats := []struct {
		key string
		dst **float64
	}{{"min_power", &f.minPower}, {"max_power", &f.maxPower}}
	for _, p := range floats {
		if v := c.Query(p.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{p.key: []string{"A valid number is required."}})
				return f, false
			}
			*p.dst = &x
		}
	}
	return f, true
}

func (f inverterFilter) match(inv domain.Inverter, partner string) bool {
	if f.city != nil && inv.City.ID != *f.city {
		return false
	}
	if f.region != nil && inv.Region.ID != *f.region {
		return false
	}
	if f.partner != "" && partner != f.partner {
		return false
	}
	if f.search != "" {
		hay := strings.ToLower(inv.Title + " " + inv.Address + " " + inv.Owner)
		if !strings.Contains(hay, f.search) {
			return false
		}
	}
	power := 0.0
	if inv.InverterMaxPower != nil {
		power = *inv.InverterMaxPower
	}
	if f.minPower != nil && power < *f.minPower {
		return false
	}
	if f.maxPower != nil && power > *f.maxPower {
		return false
	}
	return true
}

// sortInverters applies a DRF-style ordering: a field name, "-" for descending.
func sortInverters(list []domain.Inverter, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	var less func(a, b domain.Inverter) bool
	switch strings.TrimPrefix(ordering, "-") {
	case "title":
		less = func(a, b domain.Inverter) bool { return a.Title < b.Title }
	case "id", "":
		less = func(a, b domain.Inverter) bool { return a.ID < b.ID }
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func (s *Server) handleInverters(c *gin.Context) {
	q, ok := pageParams(c)
	if !ok {
		return
	}
	f, ok := parseInverterFilter(c)
	if !ok {
		return
	}

	s.mu.RLock()
	var out []domain.Inverter
	for _, inv := range s.inverters {
		if f.match(inv, s.partners[inv.ID]) {
			out = append(out, s.withLatest(inv))
		}
	}
	s.mu.RUnlock()

	sortInverters(out, c.Query("ordering"))
	writePage(c, out, q)
}

func (s *Server) lookup(c *gin.Context) (domain.Inverter, bool) {
	id, ok := pathID(c)
	if !ok {
		return domain.Inverter{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.inverters, func(inv domain.Inverter) bool { return inv.ID == domain.InverterID(id) })
	if i < 0 {
		notFound(c)
		return domain.Inverter{}, false
	}
	return s.withLatest(s.inverters[i]), true
}

func (s *Server) handleInverter(c *gin.Context) {
	if inv, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, inv)
	}
}

func (s *Server) handleRealtime(c *gin.Context) {
	inv, ok := s.lookup(c)
	if !ok {
		return
	}
	inv.LatestData = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, inv)
}

func (s *Server) handleStatistics(c *gin.Context) {
	period := domain.StatisticsPeriod(c.Query("period"))
	if !period.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"period": []string{"Select a valid choice."}})
		return
	}
	if inv, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, inv)
	}
}

func (s *Server) handleEnergyData(c *gin.Context) {
	inv, ok := s.lookup(c)
	if !ok {
		return
	}
	q, ok := pageParams(c)
	if !ok {
		return
	}
	types := c.QueryArray("types[]")

	s.mu.RLock()
	var out []domain.EnergyData
	for _, d := range s.samples[inv.ID] {
		if len(types) == 0 || slices.Contains(types, d.DataTypeKey) {
			out = append(out, d)
		}
	}
	s.mu.RUnlock()
	writePage(c, out, q)
}

// withLatest stamps the timestamp of the newest sample. Callers hold s.mu.
func (s *Server) withLatest(inv domain.Inverter) domain.Inverter {
	if samples := s.samples[inv.ID]; len(samples) > 0 {
		inv.LatestData = samples[0].CreatedAt
	}
	return inv
}

var sampleEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// generateSamples produces n deterministic samples, newest first, cycling
// through the data types.
func generateSamples(id domain.InverterID, types []DataTypeFixture, n int) []domain.EnergyData {
	if len(types) == 0 || n <= 0 {
		return nil
	}
	out := make([]domain.EnergyData, 0, n)
	for i := 0; i < n; i++ {
		dt := types[i%len(types)]
		at := sampleEpoch.Add(time.Duration(n-i) * 15 * time.Minute)
		value := math.Round((100+50*math.Sin(float64(int(id)*n+i)))*10) / 10
		out = append(out, domain.EnergyData{
			ID:           int(id)*10000 + i + 1,
			DataTypeKey:  dt.Key,
			DataTypeName: dt.Title,
			Value:        value,
			Measure:      dt.Measure,
			CreatedAt:    at.Format(time.RFC3339),
		})
	}
	return out
}
