package inverters

import (
	"context"
	"log/slog"

	"asempv/internal/domain"
	"asempv/internal/logging"
	"asempv/internal/netresult"
	"asempv/internal/pager"
	"asempv/internal/safecall"
)

// Options configures list loaders and the default language.
type Options struct {
	PageSize int
	Ordering string
	Lang     string
}

// Service answers inverter queries for the logged-in account.
type Service struct {
	api  domain.InverterAPI
	gate domain.LoginGate
	opts Options
	log  *slog.Logger
}

func New(api domain.InverterAPI, gate domain.LoginGate, opts Options, log *slog.Logger) *Service {
	return &Service{api: api, gate: gate, opts: opts, log: logging.OrDiscard(log)}
}

// Inverter fetches one inverter.
func (s *Service) Inverter(ctx context.Context, id domain.InverterID) netresult.Result[domain.Inverter] {
	return call(ctx, s, "inverters.get", func(ctx context.Context) (domain.Response[domain.Inverter], error) {
		return s.api.FetchInverter(ctx, id)
	})
}

// Realtime fetches the live view of one inverter in the configured language.
func (s *Service) Realtime(ctx context.Context, id domain.InverterID) netresult.Result[domain.Inverter] {
	return call(ctx, s, "inverters.realtime", func(ctx context.Context) (domain.Response[domain.Inverter], error) {
		return s.api.FetchInverterRealtime(ctx, id, s.opts.Lang)
	})
}

// Statistics fetches aggregated figures for period. An unknown period is
// rejected locally.
func (s *Service) Statistics(ctx context.Context, id domain.InverterID, period domain.StatisticsPeriod) netresult.Result[domain.Inverter] {
	if !period.Valid() {
		return netresult.Failure[domain.Inverter](netresult.Validation("period", "unknown period: "+string(period)))
	}
	return call(ctx, s, "inverters.statistics", func(ctx context.Context) (domain.Response[domain.Inverter], error) {
		return s.api.FetchInverterStatistics(ctx, id, period)
	})
}

func (s *Service) Dashboard(ctx context.Context, partner string) netresult.Result[domain.DashboardStats] {
	return call(ctx, s, "dashboard.get", func(ctx context.Context) (domain.Response[domain.DashboardStats], error) {
		return s.api.FetchDashboard(ctx, partner)
	})
}

func (s *Service) DataType(ctx context.Context, id int) netresult.Result[domain.DataType] {
	return call(ctx, s, "data_types.get", func(ctx context.Context) (domain.Response[domain.DataType], error) {
		return s.api.FetchDataType(ctx, id)
	})
}

// NewInverterLoader returns a loader over the inverter list narrowed by f.
// An empty f.Lang takes the configured language.
func (s *Service) NewInverterLoader(f domain.InverterFilters) *pager.Loader[domain.Inverter] {
	if f.Lang == "" {
		f.Lang = s.opts.Lang
	}
	fetch := func(ctx context.Context, q domain.PageQuery) (domain.Response[domain.Page[domain.Inverter]], error) {
		return s.api.FetchInverters(ctx, q, f)
	}
	return pager.New[domain.Inverter](fetch, s.gate, s.loaderConfig("inverters"), s.log)
}

// NewEnergyDataLoader returns a loader over the telemetry of one inverter.
func (s *Service) NewEnergyDataLoader(id domain.InverterID, q domain.EnergyDataQuery) *pager.Loader[domain.EnergyData] {
	fetch := func(ctx context.Context, pq domain.PageQuery) (domain.Response[domain.Page[domain.EnergyData]], error) {
		return s.api.FetchEnergyData(ctx, id, pq, q)
	}
	return pager.New[domain.EnergyData](fetch, s.gate, s.loaderConfig("energy_data"), s.log.With("inverter", int(id)))
}

func (s *Service) NewDataTypeLoader(search string) *pager.Loader[domain.DataType] {
	fetch := func(ctx context.Context, pq domain.PageQuery) (domain.Response[domain.Page[domain.DataType]], error) {
		return s.api.FetchDataTypes(ctx, pq, search)
	}
	return pager.New[domain.DataType](fetch, s.gate, s.loaderConfig("data_types"), s.log)
}

func (s *Service) loaderConfig(name string) pager.Config {
	return pager.Config{Name: name, PageSize: s.opts.PageSize, Ordering: s.opts.Ordering}
}

// call checks the login gate before delegating to safecall, so detail
// queries fail the same way list loads do when there is no token.
func call[T any](ctx context.Context, s *Service, name string, op safecall.Op[T]) netresult.Result[T] {
	if s.gate != nil && !s.gate.IsLoggedIn() {
		return netresult.Failure[T](netresult.NotAuthenticated(netresult.MsgNotAuthenticated))
	}
	return safecall.Call(ctx, s.log, name, op)
}
