package metadata

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// catalogueFile is the on-disk layout of a catalogue definition.
type catalogueFile struct {
	Relations []StatInfo `yaml:"relations"`
}

// Load reads a YAML catalogue definition into a new Manager.
func Load(r io.Reader, logger *slog.Logger) (*Manager, error) {
	var def catalogueFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return NewManager(logger), nil
		}
		return nil, errors.Mark(errors.Wrap(err, "decoding catalogue"), ErrInvalidCatalogue)
	}

	m := NewManager(logger)
	for _, si := range def.Relations {
		if err := m.Register(si); err != nil {
			return nil, err
		}
	}
	m.logger.Info("catalogue loaded", "relations", len(def.Relations))
	return m, nil
}

// LoadFile reads a YAML catalogue definition from path.
func LoadFile(path string, logger *slog.Logger) (*Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalogue %s", path)
	}
	defer f.Close()
	return Load(f, logger)
}
