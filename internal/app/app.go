package app

import (
	"log/slog"

	"asempv/internal/config"
	"asempv/internal/httpclient"
	"asempv/internal/services/inverters"
)

// ConfigFrom maps loaded settings onto wiring options.
func ConfigFrom(s config.Config, log *slog.Logger) Config {
	hc := httpclient.DefaultConfig()
	hc.ConnectTimeout = s.ConnectTimeout
	hc.ReadTimeout = s.ReadTimeout
	hc.WriteTimeout = s.WriteTimeout

	return Config{
		Home:            s.Home,
		BaseURL:         s.BaseURL,
		TokenPassphrase: s.TokenPassphrase,
		HTTP:            hc,
		Inverters: inverters.Options{
			PageSize: s.PageSize,
			Ordering: s.Ordering,
			Lang:     s.Lang,
		},
		Log: log,
	}
}
