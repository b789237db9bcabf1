package completion

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// Bash generates a script for the bash complete builtin.
type Bash struct{}

// Write renders the script completing cmd and the extra command names.
func (Bash) Write(w io.Writer, m *cli.Manager, cmd string, extra ...string) error {
	subs := subcommands(m)
	names := make([]string, len(subs))
	for i, s := range subs {
		names[i] = s.name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "_%s() {\n", cmd)
	b.WriteString("COMPREPLY=()\n")
	b.WriteString("local cur=${COMP_WORDS[COMP_CWORD]}\n")
	b.WriteString("local prev=${COMP_WORDS[COMP_CWORD-1]}\n")
	if len(subs) > 0 {
		b.WriteString("local word\n")
		b.WriteString("for word in \"${COMP_WORDS[@]:1:COMP_CWORD-1}\" ; do\n")
		b.WriteString("case \"${word}\" in\n")
		for _, s := range subs {
			fmt.Fprintf(&b, "%s) _%s_%s ; return ;;\n", s.name, cmd, s.name)
		}
		b.WriteString("esac\n")
		b.WriteString("done\n")
	}
	b.WriteString("\n")
	writeBashBody(&b, surfaceOptions(m.Surfaces().Bare()), names)
	b.WriteString("}\n")

	for _, s := range subs {
		fmt.Fprintf(&b, "\n_%s_%s() {\n", cmd, s.name)
		b.WriteString("local cur=${COMP_WORDS[COMP_CWORD]}\n")
		b.WriteString("local prev=${COMP_WORDS[COMP_CWORD-1]}\n\n")
		writeBashBody(&b, s.options, nil)
		b.WriteString("}\n")
	}

	fmt.Fprintf(&b, "\n%s\n", strings.Join(append([]string{"complete", "-F", "_" + cmd, cmd}, extra...), " "))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "writing bash completion")
	}
	return nil
}

// WriteFile writes the script to path.
func (bs Bash) WriteFile(path string, m *cli.Manager, cmd string, extra ...string) error {
	return writeFile(path, func(w io.Writer) error { return bs.Write(w, m, cmd, extra...) })
}

// writeBashBody completes option values after an option that takes one,
// option names after a dash or plus, and commands otherwise.
func writeBashBody(b *strings.Builder, opts []option, commands []string) {
	all := []string{"-h", "--help"}
	var free, files []string
	for _, o := range opts {
		all = append(all, o.names...)
		if !o.value {
			continue
		}
		if o.rule == "" {
			free = append(free, o.names...)
		} else {
			files = append(files, o.names...)
		}
	}
	fmt.Fprintf(b, "local options=\"%s\"\n", strings.Join(all, " "))

	if len(free)+len(files) > 0 {
		b.WriteString("case \"${prev}\" in\n")
		if len(files) > 0 {
			fmt.Fprintf(b, "%s) compopt -o default ; COMPREPLY=() ; return ;;\n", strings.Join(files, "|"))
		}
		if len(free) > 0 {
			fmt.Fprintf(b, "%s) return ;;\n", strings.Join(free, "|"))
		}
		b.WriteString("esac\n")
	}

	if len(commands) == 0 {
		b.WriteString("COMPREPLY=( $(compgen -W \"${options}\" -- \"${cur}\") )\n")
		return
	}
	b.WriteString("if [[ ${cur} == [-+]* ]] ; then\n")
	b.WriteString("COMPREPLY=( $(compgen -W \"${options}\" -- \"${cur}\") )\n")
	b.WriteString("else\n")
	fmt.Fprintf(b, "COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commands, " "))
	b.WriteString("fi\n")
}
