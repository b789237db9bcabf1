// Package sheaf declares configuration options once and exposes them through
// TOML files, environment variables and the command line.
//
// A Schema is an ordered set of named sections; each SectionSchema is an
// ordered set of options described by an Entry. Schema.Default builds a live
// Config holding one Section per declared section, each with its own copy of
// the defaults:
//
//	var schema = sheaf.MustSchema(
//		sheaf.Sect("log", sheaf.MustSectionSchema(
//			sheaf.F("level", sheaf.MustEntry(sheaf.Val("info"), "log level")),
//			sheaf.F("verbose", sheaf.Switch(false, "v", "chatty output")),
//		)),
//	)
//
//	cfg, _ := schema.Default()
//	report, err := cfg.UpdateFromFile("config.toml")
//
// Command line handling lives in the cli subpackage and shell completion in
// the completion subpackage.
package sheaf
