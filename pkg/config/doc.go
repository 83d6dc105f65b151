// Package config holds the persisted timeline configuration: page
// dimensions, colours, fonts, visual styling and the layout engine's
// tunables.
//
// Files are JSON (the historical format), TOML or YAML, chosen by
// extension. Loading overlays the file on [Default], so a file only needs
// the keys it changes:
//
//	{"colors": {"above_items": "#1ABC9C"}, "visual": {"show_dates": false}}
//
// [Config.Layout] derives the [layout.Config] the engine runs with.
//
// [layout.Config]: github.com/matzehuels/timeline/pkg/render/layout.Config
package config
