package interfaces

import (
	"context"

	domaintypes "asempv/internal/domain/types"
)

// AuthAPI exchanges credentials or a refresh token for a token pair.
type AuthAPI interface {
	Login(
		ctx context.Context,
		creds domaintypes.Credentials,
	) (domaintypes.Response[domaintypes.TokenPair], error)
	Refresh(
		ctx context.Context,
		refreshToken string,
	) (domaintypes.Response[domaintypes.TokenPair], error)
}

// InverterAPI is how we read inverters and their telemetry from the backend.
//
// A non-nil error means the exchange never produced an HTTP response.
type InverterAPI interface {
	FetchInverters(
		ctx context.Context,
		query domaintypes.PageQuery,
		filters domaintypes.InverterFilters,
	) (domaintypes.Response[domaintypes.Page[domaintypes.Inverter]], error)
	FetchInverter(
		ctx context.Context,
		id domaintypes.InverterID,
	) (domaintypes.Response[domaintypes.Inverter], error)
	FetchInverterRealtime(
		ctx context.Context,
		id domaintypes.InverterID,
		lang string,
	) (domaintypes.Response[domaintypes.Inverter], error)
	FetchInverterStatistics(
		ctx context.Context,
		id domaintypes.InverterID,
		period domaintypes.StatisticsPeriod,
	) (domaintypes.Response[domaintypes.Inverter], error)
	FetchEnergyData(
		ctx context.Context,
		id domaintypes.InverterID,
		query domaintypes.PageQuery,
		filter domaintypes.EnergyDataQuery,
	) (domaintypes.Response[domaintypes.Page[domaintypes.EnergyData]], error)
	FetchDashboard(
		ctx context.Context,
		partner string,
	) (domaintypes.Response[domaintypes.DashboardStats], error)
	FetchDataTypes(
		ctx context.Context,
		query domaintypes.PageQuery,
		search string,
	) (domaintypes.Response[domaintypes.Page[domaintypes.DataType]], error)
	FetchDataType(
		ctx context.Context,
		id int,
	) (domaintypes.Response[domaintypes.DataType], error)
}
