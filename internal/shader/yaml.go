package shader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a configuration document. Fields the document omits keep
// their default values; unknown keys are rejected.
func DecodeYAML(r io.Reader) (Config, error) {
	cfg := Defaults()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("decode shader config: %w", err)
	}
	if !cfg.Dither.Pattern.Known() {
		return Config{}, fmt.Errorf("decode shader config: unknown dither pattern %q", cfg.Dither.Pattern)
	}
	if !cfg.ImageTexture.ObjectFit.Known() {
		return Config{}, fmt.Errorf("decode shader config: unknown object fit %q", cfg.ImageTexture.ObjectFit)
	}
	cfg.AspectRatio = ParseAspectRatio(string(cfg.AspectRatio))
	if _, _, ok := cfg.AspectRatio.Terms(); !ok && cfg.AspectRatio != AspectFree {
		return Config{}, fmt.Errorf("decode shader config: unknown aspect ratio %q", cfg.AspectRatio)
	}
	if cfg.Scale <= 0 {
		return Config{}, fmt.Errorf("decode shader config: scale must be positive")
	}
	return cfg, nil
}

// LoadYAMLFile reads a configuration document from path.
func LoadYAMLFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open shader config: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f)
}

// EncodeYAML writes cfg as a YAML document.
func EncodeYAML(w io.Writer, cfg Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encode shader config: %w", err)
	}
	return encoder.Close()
}
