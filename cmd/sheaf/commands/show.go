package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/sheaf/internal/config"
	"github.com/thoreinstein/sheaf/internal/errors"
	"github.com/thoreinstein/sheaf/internal/logging"
	"github.com/thoreinstein/sheaf/internal/paths"
	"github.com/thoreinstein/sheaf/internal/translate"
	"github.com/thoreinstein/sheaf/pkg/fileutil"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// runShow prints the in-file options of the selected sections.
func (a *App) runShow(ctx context.Context, cfg *sheaf.Config) error {
	logger := logging.FromContext(ctx)

	format, err := translate.ParseFormat(config.ShowFormat.Get(cfg))
	if err != nil {
		return errors.NewUserError(err, "Use --format toml, yaml or json")
	}

	src := cfg
	if config.ShowDefaults.Get(cfg) {
		if src, err = cfg.Schema().Default(); err != nil {
			return err
		}
	}

	sections := config.ShowSections.Get(cfg)
	if config.ShowPick.Get(cfg) {
		pick := a.Pick
		if pick == nil {
			pick = pickSections
		}
		if sections, err = pick(cfg.Sections()); err != nil {
			return err
		}
		if len(sections) == 0 {
			return nil
		}
	}
	for _, s := range sections {
		if !cfg.Has(s) {
			return errors.NewUserError(&sheaf.SectionError{Section: s},
				fmt.Sprintf("Known sections: %v", cfg.Sections()))
		}
	}

	data, err := renderConfig(src, sections, !config.ShowReveal.Get(cfg))
	if err != nil {
		return err
	}
	if data, err = translate.FromTOML(data, format); err != nil {
		return err
	}

	if out := config.ShowOutput.Get(cfg); out != nil {
		if err := paths.EnsureDir(filepath.Dir(*out), 0o755); err != nil {
			return errors.NewSystemError(err, "Check that the output directory can be created")
		}
		if err := fileutil.AtomicWriteFile(*out, data, 0o644); err != nil {
			return errors.NewSystemError(err, "Check that the output path is writable")
		}
		logger.Info("wrote configuration", "path", *out, "format", format)
		return nil
	}
	_, err = a.Out.Write(data)
	return errors.Wrap(err, "writing output")
}

// renderConfig encodes the in-file options of sections, all when empty, as
// TOML. With mask set, string values of secret-looking options are masked.
func renderConfig(cfg *sheaf.Config, sections []string, mask bool) ([]byte, error) {
	all, err := cfg.ToMap(true)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]any, len(all))
	for name, opts := range all {
		if len(sections) > 0 && !slices.Contains(sections, name) {
			continue
		}
		if mask {
			for opt, v := range opts {
				s, ok := v.(string)
				if ok && s != "" && (logging.ShouldMask(opt) || logging.LooksLikeToken(s)) {
					opts[opt] = logging.MaskValue(s)
				}
			}
		}
		out[name] = opts
	}
	data, err := toml.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "encoding toml")
	}
	return data, nil
}

// pickSections lets the user choose sections with a fuzzy finder. Aborting
// selects nothing.
func pickSections(sections []string) ([]string, error) {
	idx, err := fuzzyfinder.FindMulti(sections, func(i int) string { return sections[i] })
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	picked := make([]string, len(idx))
	for i, n := range idx {
		picked[i] = sections[n]
	}
	return picked, nil
}
