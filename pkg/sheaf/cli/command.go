package cli

// Command describes one command of the tool.
type Command struct {
	// Name is the sub-command token. It is ignored for Layout.Common and
	// Layout.Bare.
	Name string
	// Help is a one line description.
	Help string
	// Sections lists the sections whose options the command exposes, in
	// increasing order of precedence.
	Sections []string
	// Defaults forces option values when the command runs and the option is
	// not given on the command line. Names that are not on the command
	// surface end up in Result.Values.
	Defaults map[string]any
}

// Layout is the command structure of a tool.
type Layout struct {
	// Common holds the description of the tool and the sections shared by
	// every command.
	Common Command
	// Bare, when set, makes the tool runnable without a sub-command.
	Bare *Command
	// Commands lists sub-commands in display order.
	Commands []Command
}

func (l Layout) command(name string) (Command, bool) {
	for _, c := range l.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}
