// Package config declares the configuration of the sheaf command itself.
//
// The tool is its own first user: [Schema] is built with the sheaf library
// and [Layout] maps its sections onto the command line.
//
// # Configuration Files
//
// Values are read from, in increasing priority:
//
//   - the defaults declared in [Schema]
//   - the global file, $XDG_CONFIG_HOME/sheaf/config.toml
//   - the local file, .sheaf.toml in the working directory
//   - SHEAF_<SECTION>_<OPTION> environment variables
//   - command line options
//
// For example:
//
//	[log]
//	level = "info"
//
//	[show]
//	format = "yaml"
//
// # Loading Configuration
//
//	loaded, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	level := config.LogLevel.Get(loaded.Config)
//
// # Validation
//
// [Validate] checks the values the option types alone cannot constrain,
// such as level and format names.
package config
