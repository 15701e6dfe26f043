// Package config provides the configuration of the calculator site: site
// identity, HTTP server, catalog source, history storage, exchange rates and
// static builds. Values come from defaults, an optional YAML file,
// CALCSITE_* environment variables and CLI flags, in increasing priority.
package config
