package domain

import (
	interfaces "asempv/internal/domain/interfaces"
	types "asempv/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username         = types.Username
	InverterID       = types.InverterID
	StatisticsPeriod = types.StatisticsPeriod
	Credentials      = types.Credentials
	TokenPair        = types.TokenPair
	Region           = types.Region
	City             = types.City
	Inverter         = types.Inverter
	EnergyData       = types.EnergyData
	DataType         = types.DataType
	DashboardStats   = types.DashboardStats
	PageQuery        = types.PageQuery
	InverterFilters  = types.InverterFilters
	EnergyDataQuery  = types.EnergyDataQuery
)

// Generic aliases for the pagination and transport shapes.
type (
	Page[T any]     = types.Page[T]
	Response[T any] = types.Response[T]
)

// Statistics periods accepted by the backend.
const (
	PeriodToday = types.PeriodToday
	PeriodWeek  = types.PeriodWeek
	PeriodMonth = types.PeriodMonth
	PeriodYear  = types.PeriodYear
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	TokenStore  = interfaces.TokenStore
	AuthAPI     = interfaces.AuthAPI
	InverterAPI = interfaces.InverterAPI
	LoginGate   = interfaces.LoginGate
)
