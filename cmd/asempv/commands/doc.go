// Package commands defines the asempv CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login            Exchange username and password for a token pair
//   - logout           Forget the stored tokens
//   - status           Show the login state and effective settings
//   - token refresh    Exchange the refresh token for a new pair
//   - inverters list   List inverters, one page or --all
//   - inverters show   Show one inverter (also realtime, stats, data)
//   - dashboard        Fleet totals
//   - data-types       List telemetry channels
//   - browse           Scroll the inverter list in the terminal
//
// # Implementation
//
// The root command loads settings (defaults, config file, ASEMPV_* env,
// flags), opens the log file and builds the dependency graph before any
// subcommand runs. Handlers share it through the package-level wire.
package commands
