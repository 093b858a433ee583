package backend

import (
	"context"
	"net/url"
	"strconv"

	"asempv/internal/domain"
)

const (
	pathInverters = "api/v2/inverters/"
	pathDashboard = "api/v2/dashboard/"
	pathDataTypes = "api/v2/data-types/"

	// DefaultLang is sent when a filter leaves the language empty.
	DefaultLang = "uk"
)

func inverterPath(id domain.InverterID, sub string) string {
	p := pathInverters + id.String() + "/"
	if sub != "" {
		p += sub + "/"
	}
	return p
}

func setPage(q url.Values, pq domain.PageQuery, withSize bool) {
	if pq.Page > 0 {
		q.Set("page", strconv.Itoa(pq.Page))
	}
	if withSize && pq.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(pq.PageSize))
	}
	if pq.Ordering != "" {
		q.Set("ordering", pq.Ordering)
	}
}

func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func (c *Client) FetchInverters(ctx context.Context, pq domain.PageQuery, f domain.InverterFilters) (domain.Response[domain.Page[domain.Inverter]], error) {
	q := url.Values{}
	setPage(q, pq, true)
	if f.City != nil {
		q.Set("city", strconv.Itoa(*f.City))
	}
	if f.Region != nil {
		q.Set("region", strconv.Itoa(*f.Region))
	}
	if f.MinPower != nil {
		q.Set("min_power", formatFloat(*f.MinPower))
	}
	if f.MaxPower != nil {
		q.Set("max_power", formatFloat(*f.MaxPower))
	}
	setNonEmpty(q, "partner", f.Partner)
	setNonEmpty(q, "search", f.Search)
	q.Set("lang", langOrDefault(f.Lang))

	resp, err := getJSON[paginated[domain.Inverter]](ctx, c, pathInverters, q)
	if err != nil {
		return domain.Response[domain.Page[domain.Inverter]]{}, err
	}
	return pageOf(resp), nil
}

func (c *Client) FetchInverter(ctx context.Context, id domain.InverterID) (domain.Response[domain.Inverter], error) {
	return getJSON[domain.Inverter](ctx, c, inverterPath(id, ""), nil)
}

func (c *Client) FetchInverterRealtime(ctx context.Context, id domain.InverterID, lang string) (domain.Response[domain.Inverter], error) {
	return getJSON[domain.Inverter](ctx, c, inverterPath(id, "realtime"), url.Values{"lang": {langOrDefault(lang)}})
}

func (c *Client) FetchInverterStatistics(ctx context.Context, id domain.InverterID, period domain.StatisticsPeriod) (domain.Response[domain.Inverter], error) {
	q := url.Values{}
	setNonEmpty(q, "period", string(period))
	return getJSON[domain.Inverter](ctx, c, inverterPath(id, "statistics"), q)
}

// FetchEnergyData pages through one inverter's samples. The endpoint does not
// accept page_size or ordering.
func (c *Client) FetchEnergyData(ctx context.Context, id domain.InverterID, pq domain.PageQuery, f domain.EnergyDataQuery) (domain.Response[domain.Page[domain.EnergyData]], error) {
	q := url.Values{}
	if pq.Page > 0 {
		q.Set("page", strconv.Itoa(pq.Page))
	}
	setNonEmpty(q, "aggregation", f.Aggregation)
	setNonEmpty(q, "start_date", f.StartDate)
	setNonEmpty(q, "end_date", f.EndDate)
	for _, t := range f.Types {
		q.Add("types[]", t)
	}

	resp, err := getJSON[paginated[domain.EnergyData]](ctx, c, inverterPath(id, "data"), q)
	if err != nil {
		return domain.Response[domain.Page[domain.EnergyData]]{}, err
	}
	return pageOf(resp), nil
}

func (c *Client) FetchDashboard(ctx context.Context, partner string) (domain.Response[domain.DashboardStats], error) {
	q := url.Values{}
	setNonEmpty(q, "partner", partner)
	return getJSON[domain.DashboardStats](ctx, c, pathDashboard, q)
}

func (c *Client) FetchDataTypes(ctx context.Context, pq domain.PageQuery, search string) (domain.Response[domain.Page[domain.DataType]], error) {
	q := url.Values{}
	setPage(q, pq, false)
	setNonEmpty(q, "search", search)

	resp, err := getJSON[paginated[domain.DataType]](ctx, c, pathDataTypes, q)
	if err != nil {
		return domain.Response[domain.Page[domain.DataType]]{}, err
	}
	return pageOf(resp), nil
}

func (c *Client) FetchDataType(ctx context.Context, id int) (domain.Response[domain.DataType], error) {
	return getJSON[domain.DataType](ctx, c, pathDataTypes+strconv.Itoa(id)+"/", nil)
}

func langOrDefault(lang string) string {
	if lang == "" {
		return DefaultLang
	}
	return lang
}
