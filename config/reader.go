package config

import (
	"bytes"
	"io"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/swerve/drive"
	"go.viam.com/swerve/logging"
	"go.viam.com/swerve/swerve"
)

// Read reads a config from the given file, substituting ${VAR} references from the environment.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", filePath)
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies where, if applicable, the file
// the reader originated from. The input is JSON5, so comments and trailing commas are allowed.
// Missing wheels or loop sections fall back to Default.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config from json5")
	}

	cfg := Config{ConfigFilePath: originalPath}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode Config")
	}

	if _, ok := raw["wheels"]; !ok {
		logger.Debug("no wheels configured, using the default base")
		cfg.Wheels = swerve.DefaultWheels()
	}
	if _, ok := raw["loop"]; !ok {
		cfg.Loop = drive.DefaultLoopConfig()
	}

	if err := cfg.Ensure(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger.Debugw("read config", "path", originalPath, "wheels", len(cfg.Wheels), "frequency_hz", cfg.Loop.Frequency)
	return &cfg, nil
}
