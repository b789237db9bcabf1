package cli

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// table indexes the spellings of one surface. pflag only knows --name, so
// every accepted spelling is rewritten to --name=value before parsing.
type table struct {
	long     map[string]*optionValue
	short    map[string]*optionValue
	switches map[string]*optionValue
}

func newTable() *table {
	return &table{
		long:     map[string]*optionValue{},
		short:    map[string]*optionValue{},
		switches: map[string]*optionValue{},
	}
}

// add indexes v, rejecting single dash spellings used twice.
func (t *table) add(v *optionValue) error {
	b := v.binding
	short := b.Entry.ShortName()
	if isSwitch(b.Entry) {
		for _, name := range []string{b.Option, short} {
			if name == "" {
				continue
			}
			if t.taken(name) {
				return errors.Wrapf(sheaf.ErrSchema, "option %s.%s: -%s is already used", b.Section, b.Option, name)
			}
			t.switches[name] = v
		}
		t.long[b.Option] = v
		return nil
	}
	t.long[b.Option] = v
	if short != "" {
		if t.taken(short) {
			return errors.Wrapf(sheaf.ErrSchema, "option %s.%s: -%s is already used", b.Section, b.Option, short)
		}
		t.short[short] = v
	}
	return nil
}

func (t *table) taken(single string) bool {
	_, sw := t.switches[single]
	_, sh := t.short[single]
	return sw || sh
}

// isOption reports whether tok looks like an option rather than a value.
// Numbers such as -1 or +2.5 are values unless the surface declares the
// spelling, as a switch named inf or a short name 1 would.
func (t *table) isOption(tok string) bool {
	if len(tok) < 2 || (tok[0] != '-' && tok[0] != '+') {
		return false
	}
	if _, ok := t.switches[tok[1:]]; ok {
		return true
	}
	if tok[0] == '-' && tok[1] != '-' {
		r, _ := utf8.DecodeRuneInString(tok[1:])
		if _, ok := t.short[string(r)]; ok {
			return true
		}
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}

type scanned struct {
	tokens  []string
	help    bool
	command string
	rest    []string
}

// scan rewrites args for pflag. With root set, the first positional token
// is the sub-command and scanning stops there.
func (t *table) scan(args []string, root bool) (scanned, error) {
	var out scanned
	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case tok == "--":
			pos := args[i+1:]
			if len(pos) == 0 {
				return out, nil
			}
			if !root {
				return out, unexpected(pos[0])
			}
			out.command, out.rest = pos[0], pos[1:]
			return out, nil

		case strings.HasPrefix(tok, "--"):
			name, val, hasVal := strings.Cut(tok[2:], "=")
			v, ok := t.long[name]
			if !ok && name == "help" {
				out.help = true
				continue
			}
			if !ok || isSwitch(v.binding.Entry) {
				return out, unknown(tok)
			}
			next, err := t.emit(&out, v, tok, val, hasVal, args, i)
			if err != nil {
				return out, err
			}
			i = next

		case strings.HasPrefix(tok, "+") && t.isOption(tok):
			v, ok := t.switches[tok[1:]]
			if !ok {
				return out, unknown(tok)
			}
			out.tokens = append(out.tokens, "--"+v.binding.Option+"=true")

		case t.isOption(tok):
			if v, ok := t.switches[tok[1:]]; ok {
				out.tokens = append(out.tokens, "--"+v.binding.Option+"=false")
				continue
			}
			next, err := t.scanShort(&out, tok, args, i)
			if err != nil {
				return out, err
			}
			i = next

		default:
			if !root {
				return out, unexpected(tok)
			}
			out.command, out.rest = tok, args[i+1:]
			return out, nil
		}
	}
	return out, nil
}

// scanShort handles -s, -sVALUE, -s=VALUE and clusters such as -xvf.
func (t *table) scanShort(out *scanned, tok string, args []string, i int) (int, error) {
	body := []rune(tok[1:])
	for k, r := range body {
		name := string(r)
		v, ok := t.short[name]
		if !ok {
			if name == "h" {
				out.help = true
				continue
			}
			return i, unknown("-" + name)
		}
		if v.kind == kindBool || v.kind == kindConst || v.kind == kindCount {
			if _, err := t.emit(out, v, tok, "", false, args, i); err != nil {
				return i, err
			}
			continue
		}
		rest := string(body[k+1:])
		if rest == "" {
			return t.emit(out, v, tok, "", false, args, i)
		}
		return t.emit(out, v, tok, strings.TrimPrefix(rest, "="), true, args, i)
	}
	return i, nil
}

// emit appends the pflag tokens of one option occurrence and returns the
// index of the last argument consumed.
func (t *table) emit(out *scanned, v *optionValue, tok, val string, hasVal bool, args []string, i int) (int, error) {
	flag := "--" + v.binding.Option
	push := func(s string) { out.tokens = append(out.tokens, flag+"="+s) }

	switch v.kind {
	case kindBool:
		if hasVal {
			return i, errors.Wrapf(ErrUsage, "%s: ignored explicit argument %q", tok, val)
		}
		if v.binding.Entry.CLI().Action == sheaf.ActionStoreFalse {
			push("false")
		} else {
			push("true")
		}
	case kindConst, kindCount:
		if hasVal {
			return i, errors.Wrapf(ErrUsage, "%s: ignored explicit argument %q", tok, val)
		}
		push(noValue)
	case kindOptional:
		switch {
		case hasVal:
			push(val)
		case i+1 < len(args) && !t.isOption(args[i+1]):
			i++
			push(args[i])
		default:
			push(noValue)
		}
	case kindMany:
		n, exact := v.binding.Entry.CLI().Nargs.Exactly()
		push(noValue)
		count := 0
		if hasVal {
			push(val)
			count++
		} else {
			for i+1 < len(args) && !t.isOption(args[i+1]) && (!exact || count < n) {
				i++
				push(args[i])
				count++
			}
		}
		if exact && count != n {
			return i, errors.Wrapf(ErrUsage, "%s: expected %d argument(s), got %d", tok, n, count)
		}
	default:
		switch {
		case hasVal:
			push(val)
		case i+1 < len(args):
			i++
			push(args[i])
		default:
			return i, errors.Wrapf(ErrUsage, "%s: expected one argument", tok)
		}
	}
	return i, nil
}

func unknown(tok string) error {
	return errors.Wrapf(ErrUsage, "unrecognized argument %s", tok)
}

func unexpected(tok string) error {
	return errors.Wrapf(ErrUsage, "unexpected argument %q", tok)
}
