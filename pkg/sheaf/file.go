package sheaf

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/sheaf/internal/paths"
	"github.com/thoreinstein/sheaf/pkg/fileutil"
)

// LoadReport describes what a config file supplied.
type LoadReport struct {
	// Path is the file that was looked up.
	Path string
	// Found is false when the file does not exist; nothing was loaded.
	Found bool
	// Empty is true when the file exists but holds no data.
	Empty bool
	// MissingSections lists sections with in-file options absent from the file.
	MissingSections []string
	// MissingOptions lists, per section present in the file, the in-file
	// options it does not set.
	MissingOptions map[string][]string
}

// Complete reports whether the file set every in-file option.
func (r *LoadReport) Complete() bool {
	if !r.Found || r.Empty || len(r.MissingSections) > 0 {
		return false
	}
	for _, opts := range r.MissingOptions {
		if len(opts) > 0 {
			return false
		}
	}
	return true
}

// UpdateFromFile applies the in-file options found in a TOML file. A missing
// file is not an error; a file that cannot be decoded yields ErrMalformedFile.
// Options the file sets but which are excluded from files are discarded, and
// unknown sections or options are ignored.
func (c *Config) UpdateFromFile(path string) (*LoadReport, error) {
	report := &LoadReport{Path: path, MissingOptions: map[string][]string{}}

	data, err := fileutil.ReadLimited(path, fileutil.MaxConfigSize)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	report.Found = true

	raw, err := decodeTOML(path, data)
	if err != nil {
		return nil, err
	}
	// Comments and blank lines supply nothing.
	report.Empty = len(raw) == 0

	for name, sec := range c.All() {
		inFile := inFileOptions(sec.schema)
		if len(inFile) == 0 {
			continue
		}
		node, ok := raw[name]
		if !ok {
			report.MissingSections = append(report.MissingSections, name)
			continue
		}
		table, ok := node.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrMalformedFile, "decoding %s: section %q is not a table", path, name)
		}
		values := make(map[string]any, len(inFile))
		for _, opt := range inFile {
			v, ok := table[opt]
			if !ok {
				report.MissingOptions[name] = append(report.MissingOptions[name], opt)
				continue
			}
			values[opt] = v
		}
		if err := sec.Update(values, true); err != nil {
			return nil, errors.Wrapf(err, "loading %s", path)
		}
	}
	return report, nil
}

func decodeTOML(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			err = errors.WithDetailf(err, "line %d, column %d", row, col)
		}
		return nil, withKind(ErrMalformedFile, err, "decoding %s", path)
	}
	return raw, nil
}

func inFileOptions(s *SectionSchema) []string {
	var names []string
	for _, f := range s.fields {
		if f.Entry.InFile() {
			names = append(names, f.Name)
		}
	}
	return names
}

// MarshalTOML renders the in-file options as a TOML document.
func (c *Config) MarshalTOML() ([]byte, error) {
	m, err := c.ToMap(true)
	if err != nil {
		return nil, err
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return data, nil
}

// SaveFile writes the in-file options to a TOML file, creating parent
// directories. With existOK false, an existing file is left untouched and
// ErrFileAlreadyExists is returned.
func (c *Config) SaveFile(path string, existOK bool) error {
	if !existOK {
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(ErrFileAlreadyExists, "%s", path)
		}
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	data, err := c.MarshalTOML()
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, 0o644)
}
