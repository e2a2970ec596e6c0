// Package confloader provides the configuration loading mechanism.
//
// It layers several koanf sources into one tree and unmarshals it into a
// typed struct. Priority (highest to lowest):
//
//  1. Overrides (command-line flags, loaded with LoadMap after Load)
//  2. Environment variables (STEAM_ prefix, "__" separates sections)
//  3. The YAML configuration file
//  4. Default values
//
// Watcher reports changes to a configuration file so long-running
// sessions can pick up new settings.
package confloader
