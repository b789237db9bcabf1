package completion

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// continuation ends every line of an _arguments call but the last.
const continuation = " \\\n"

// Zsh generates a compdef script.
type Zsh struct {
	// Version reports the installed zsh version. ZshVersion is used when nil.
	Version VersionFunc
	// ForceGrouping emits option groups without probing. Groups need
	// zsh 5.4 or later.
	ForceGrouping bool
	// Sourceable appends a compdef call so the script can be sourced.
	Sourceable bool
}

func (z Zsh) grouping() bool {
	if z.ForceGrouping {
		return true
	}
	version := z.Version
	if version == nil {
		version = ZshVersion
	}
	major, minor, ok := version()
	return ok && (major > 5 || (major == 5 && minor >= 4))
}

// Write renders the script completing cmd and the extra command names.
func (z Zsh) Write(w io.Writer, m *cli.Manager, cmd string, extra ...string) error {
	grouping := z.grouping()
	subs := subcommands(m)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", strings.Join(append([]string{"#compdef", cmd}, extra...), " "))

	fmt.Fprintf(&b, "function _%s {\n", cmd)
	b.WriteString("local line\n")
	args := []string{"_arguments -C"}
	if len(subs) > 0 {
		items := make([]string, len(subs))
		for i, s := range subs {
			items[i] = fmt.Sprintf(`%s\:'%s'`, s.name, zshCommandHelp(s.help))
		}
		args = append(args, fmt.Sprintf(`"1:Commands:((%s))"`, strings.Join(items, " ")))
	}
	args = append(args, zshArguments(surfaceOptions(m.Surfaces().Bare()), grouping)...)
	if len(subs) > 0 {
		args = append(args, "'*::arg:->args'")
	}
	b.WriteString(strings.Join(args, continuation) + "\n")
	if len(subs) > 0 {
		b.WriteString("case $line[1] in\n")
		for _, s := range subs {
			fmt.Fprintf(&b, "%s) _%s_%s ;;\n", s.name, cmd, s.name)
		}
		b.WriteString("esac\n")
	}
	b.WriteString("}\n")

	for _, s := range subs {
		fmt.Fprintf(&b, "\nfunction _%s_%s {\n", cmd, s.name)
		args := append([]string{"_arguments"}, zshArguments(s.options, grouping)...)
		b.WriteString(strings.Join(args, continuation) + "\n")
		b.WriteString("}\n")
	}

	if z.Sourceable {
		fmt.Fprintf(&b, "\n%s\n", strings.Join(append([]string{"compdef", "_" + cmd, cmd}, extra...), " "))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "writing zsh completion")
	}
	return nil
}

// WriteFile writes the script to path.
func (z Zsh) WriteFile(path string, m *cli.Manager, cmd string, extra ...string) error {
	return writeFile(path, func(w io.Writer) error { return z.Write(w, m, cmd, extra...) })
}

func zshArguments(opts []option, grouping bool) []string {
	var out []string
	if grouping {
		out = append(out, "+ '(help)'")
	}
	out = append(out, "'--help[show help message]'", "'-h[show help message]'")

	for _, o := range opts {
		if grouping {
			if o.repeat {
				out = append(out, fmt.Sprintf("+ '%s'", o.name))
			} else {
				out = append(out, fmt.Sprintf("+ '(%s)'", o.name))
			}
		}
		prefix := ""
		if o.repeat {
			prefix = "*"
		}
		help := zshOptionHelp(o.help)
		for _, name := range o.names {
			switch {
			case !o.value:
				out = append(out, fmt.Sprintf("'%s%s[%s]'", prefix, name, help))
			case o.rule == "":
				out = append(out, fmt.Sprintf("'%s%s=[%s]: :( )'", prefix, name, help))
			default:
				out = append(out, fmt.Sprintf("'%s%s=[%s]: :%s'", prefix, name, help, quoteSingle(o.rule)))
			}
		}
	}
	return out
}

func quoteSingle(s string) string {
	return strings.ReplaceAll(s, "'", `'"'"'`)
}

func zshOptionHelp(s string) string {
	s = strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
	return quoteSingle(s)
}

// zshCommandHelp escapes a description placed in a double quoted
// "((name\:'description'))" list.
func zshCommandHelp(s string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"$", `\$`,
		"`", "\\`",
		":", `\:`,
		"'", `'\''`,
	).Replace(s)
}
