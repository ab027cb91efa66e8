package manifest

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Paths of the fields verup reads and writes.
const (
	NamePath         = "name"
	VersionPath      = "version"
	ExtraPath        = "extra.verup"
	ExtraVersionPath = "extra.verup.version"
	ExtraFilesPath   = "extra.verup.files"
	ExtraRegsPath    = "extra.verup.regs"
)

// SelfName is the package name of verup's own manifest. Without a name
// filter, the locator skips manifests carrying it.
const SelfName = "indaco/verup"

var errNotObject = errors.New("manifest is not a JSON object")

// Manifest is a parsed manifest document. The raw bytes are kept so that
// unknown keys and their order survive a rewrite.
type Manifest struct {
	Path string
	Data []byte
}

// Config is the extra.verup block of a manifest.
type Config struct {
	// Version is the block's own version, empty when absent.
	Version string
	// HasVersion reports whether the block declares a version key at all.
	HasVersion bool
	Files      []string
	Regs       []string
}

// Parse validates data as a JSON object.
func Parse(path string, data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, errNotObject
	}
	return &Manifest{Path: path, Data: data}, nil
}

// Name returns the manifest's package name and whether it is set.
func (m *Manifest) Name() (string, bool) {
	r := gjson.GetBytes(m.Data, NamePath)
	if !r.Exists() || r.Type == gjson.Null {
		return "", false
	}
	return r.String(), true
}

// Version returns the top-level version, empty when absent or null.
func (m *Manifest) Version() string {
	return gjson.GetBytes(m.Data, VersionPath).String()
}

// Verup returns the extra.verup block. ok is false when the block is missing
// or is not an object.
func (m *Manifest) Verup() (cfg Config, ok bool) {
	block := gjson.GetBytes(m.Data, ExtraPath)
	if !block.IsObject() {
		return Config{}, false
	}

	ver := block.Get("version")
	cfg.HasVersion = ver.Exists()
	cfg.Version = ver.String()
	cfg.Files = stringList(block.Get("files"))
	cfg.Regs = stringList(block.Get("regs"))
	return cfg, true
}

// CurrentVersion returns the version a bump starts from: the extra.verup
// version when non-empty, otherwise the top-level version.
func (m *Manifest) CurrentVersion() string {
	if cfg, ok := m.Verup(); ok && cfg.Version != "" {
		return cfg.Version
	}
	return m.Version()
}

// stringList reads a JSON array of strings. A single string is treated as a
// one-element list; other values are ignored.
func stringList(r gjson.Result) []string {
	switch {
	case r.IsArray():
		items := r.Array()
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item.Type == gjson.String {
				out = append(out, item.String())
			}
		}
		return out
	case r.Type == gjson.String:
		return []string{r.String()}
	default:
		return nil
	}
}
