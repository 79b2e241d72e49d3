package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose   = "verbose"
	FlagConfig    = "config"
	FlagAPIURL    = "api-url"
	FlagToken     = "token"
	FlagLogFile   = "log-file"
	FlagStateFile = "state-file"

	// Layout command flags
	FlagAlgorithm   = "algorithm"
	FlagDirection   = "direction"
	FlagNodeSpacing = "node-spacing"
	FlagRankSpacing = "rank-spacing"

	// View command flags
	FlagDensity = "density"

	// Output format flags
	FlagJSON = "json"
)

// Config keys the global flags are bound to.
var flagConfigKeys = map[string]string{
	FlagAPIURL:    "api.base_url",
	FlagToken:     "api.token",
	FlagLogFile:   "paths.log",
	FlagStateFile: "paths.state",
	FlagDensity:   "graph.density",
}
