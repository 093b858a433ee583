package types

import "strconv"

// Username is the login name of a backend account.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// InverterID identifies an inverter on the backend.
type InverterID int

// String returns the decimal form of the identifier.
func (id InverterID) String() string { return strconv.Itoa(int(id)) }

// StatisticsPeriod selects the aggregation window of inverter statistics.
type StatisticsPeriod string

const (
	PeriodToday StatisticsPeriod = "today"
	PeriodWeek  StatisticsPeriod = "week"
	PeriodMonth StatisticsPeriod = "month"
	PeriodYear  StatisticsPeriod = "year"
)

// Valid reports whether p is empty (server default) or a known period.
func (p StatisticsPeriod) Valid() bool {
	switch p {
	case "", PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}
