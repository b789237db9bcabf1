package cli

import "github.com/thoreinstein/sheaf/pkg/sheaf"

// FlagNames lists the command line spellings of an option. Switches get
// -name, +name and, with a short name, -s and +s. Other options get --name
// and -s.
func FlagNames(option string, e *sheaf.Entry) []string {
	short := e.ShortName()
	if isSwitch(e) {
		names := []string{"-" + option, "+" + option}
		if short != "" {
			names = append(names, "-"+short, "+"+short)
		}
		return names
	}
	names := []string{"--" + option}
	if short != "" {
		names = append(names, "-"+short)
	}
	return names
}

func isSwitch(e *sheaf.Entry) bool {
	return e.CLI().Action == sheaf.ActionSwitch
}
