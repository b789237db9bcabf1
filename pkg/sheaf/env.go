package sheaf

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvName returns the environment variable overriding an option:
// PREFIX_SECTION_OPTION, upper-cased.
func EnvName(prefix, section, option string) string {
	parts := []string{section, option}
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	return strings.ToUpper(strings.Join(parts, "_"))
}

// UpdateFromEnv applies environment overrides to in-file options. Values are
// parsed like file strings. It returns the "section.option" keys that were
// set.
func (c *Config) UpdateFromEnv(prefix string) ([]string, error) {
	v := viper.New()
	var applied []string
	for name, sec := range c.All() {
		for _, f := range sec.schema.fields {
			if !f.Entry.InFile() {
				continue
			}
			key := name + "." + f.Name
			if err := v.BindEnv(key, EnvName(prefix, name, f.Name)); err != nil {
				return applied, errors.Wrapf(err, "binding %s", key)
			}
			if !v.IsSet(key) {
				continue
			}
			if err := sec.SetFromText(f.Name, v.GetString(key)); err != nil {
				return applied, errors.Wrapf(err, "environment %s", EnvName(prefix, name, f.Name))
			}
			applied = append(applied, key)
		}
	}
	return applied, nil
}
