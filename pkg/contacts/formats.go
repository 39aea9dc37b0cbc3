package contacts

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileFormat represents the contact file encodings the file source reads.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTOML               // [[contact]] tables
	FormatMsgpack            // msgpack array of records
)

// FormatInfo contains metadata about a contact file format
type FormatInfo struct {
	Format      FileFormat
	Name        string
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatTOML: {
		Format:      FormatTOML,
		Name:        "toml",
		Description: "TOML contact list",
		Extensions:  []string{".toml"},
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Name:        "msgpack",
		Description: "MessagePack contact list",
		Extensions:  []string{".msgpack", ".mp", ".bin"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseFormat resolves a format name from configuration, e.g. "toml".
func ParseFormat(name string) (FileFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for format, info := range supportedFormats {
		if info.Name == name {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFileFormat picks the format of filename from its extension.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnknownFormat, filename)
}

// ResolveFormat uses name when given and falls back to the extension.
func ResolveFormat(filename, name string) (FileFormat, error) {
	if name != "" {
		return ParseFormat(name)
	}
	return DetectFileFormat(filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
