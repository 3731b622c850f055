package profile

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a YAML profile from path. Sections missing from the file keep
// the built-in content; an empty path returns Default unchanged.
func Load(_ context.Context, path string) (*Profile, error) {
	def := Default()
	if path == "" {
		return def, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadProfile, path, err)
	}

	var p Profile
	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadProfile, path, err)
	}
	p.fillFrom(def)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
