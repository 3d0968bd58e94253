// Package config loads teletext map settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML (.toml) or YAML (.yaml, .yml) file
//  3. TELETEXT_* environment variables
//
// A missing file is not an error. The result is checked by Validate before
// it is returned. Watcher reloads the file when it changes on disk.
//
// Example TOML:
//
//	[raster]
//	width = 40
//	height = 25
//	ramp = " .:=+*#%@"
//
//	[classify]
//	margin = 20
//	light = 200
//
//	[vector]
//	size = 20
//	north_up = true
package config
