package contacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/dialserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// FileConfig configures a file source.
type FileConfig struct {
	Path string
	// Format is "toml" or "msgpack". Empty detects it from the extension.
	Format string
	// Ranker orders the records on every scan. Nil keeps file order, for
	// files exported already ranked.
	Ranker *Ranker
}

// tomlFile is the on-disk layout of a TOML contact list.
type tomlFile struct {
	Contact []Record `toml:"contact"`
}

// FileSource reads contacts from a TOML or msgpack file. The file is read on
// every scan so a recache picks up edits.
type FileSource struct {
	path   string
	format FileFormat
	ranker *Ranker
}

// NewFileSource creates a file source. The file does not need to exist yet;
// scans fail with ErrSourceUnavailable until it does.
func NewFileSource(cfg FileConfig) (*FileSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: file source needs a path", ErrInvalidConfig)
	}
	format, err := ResolveFormat(cfg.Path, cfg.Format)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: cfg.Path, format: format, ranker: cfg.Ranker}, nil
}

// NewFileFactory implements Factory for FileConfig.
func NewFileFactory(config interface{}) (Source, error) {
	cfg, ok := config.(FileConfig)
	if !ok {
		return nil, fmt.Errorf("%w: file source expects contacts.FileConfig, got %T", ErrInvalidConfig, config)
	}
	return NewFileSource(cfg)
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and ranks every record in the file.
func (s *FileSource) Load() ([]Record, error) {
	records, err := ReadFile(s.path, s.format)
	if err != nil {
		return nil, err
	}
	if s.ranker != nil {
		s.ranker.Sort(records)
	}
	log.Debugf("Loaded %d contact records from %s", len(records), s.path)
	return records, nil
}

// Scan implements Source.
func (s *FileSource) Scan(ctx context.Context, fn func(Record) error) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Source.
func (s *FileSource) Close() error {
	return nil
}

// ReadFile decodes a contact list in the given format.
func ReadFile(path string, format FileFormat) ([]Record, error) {
	switch format {
	case FormatTOML:
		var doc tomlFile
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return nil, wrapReadErr(path, err)
		}
		return doc.Contact, nil

	case FormatMsgpack:
		f, err := os.Open(path)
		if err != nil {
			return nil, wrapReadErr(path, err)
		}
		defer f.Close()

		var records []Record
		if err := msgpack.NewDecoder(f).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode contacts from %s: %w", path, err)
		}
		return records, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// WriteFile encodes records to path in the given format, creating parent
// directories as needed.
func WriteFile(path string, format FileFormat, records []Record) error {
	switch format {
	case FormatTOML:
		return utils.SaveTOMLFile(tomlFile{Contact: records}, path)

	case FormatMsgpack:
		data, err := msgpack.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to encode contacts: %w", err)
		}
		return utils.WriteFileAtomic(path, data)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

func wrapReadErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return fmt.Errorf("failed to read contacts from %s: %w", path, err)
}
