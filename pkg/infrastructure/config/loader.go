package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 環境変数のプレフィックス
const EnvPrefix = "YOUHODLER"

// Load 設定を読み込む
//
// 既定値、設定ファイル（.yaml/.yml/.toml）、.env、環境変数の順に上書きする。
// path が空の場合は設定ファイルを読まない。
func Load(path string, dotenvPaths ...string) (*model.Config, error) {
	conf := model.NewDefaultConfig()

	if path != "" {
		if err := decodeFile(path, conf); err != nil {
			return nil, err
		}
	}

	if err := loadDotenv(dotenvPaths...); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, conf); err != nil {
		return nil, errors.Wrap(err, "failed to read environment variables")
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return conf, nil
}

func decodeFile(path string, conf *model.Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return errors.Wrapf(err, "failed to decode toml, path: %s", path)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read config, path: %s", path)
		}
		if err := yaml.Unmarshal(b, conf); err != nil {
			return errors.Wrapf(err, "failed to decode yaml, path: %s", path)
		}
	default:
		return errors.Errorf("unsupported config file extension %q, path: %s", ext, path)
	}
	return nil
}

// loadDotenv .envを読み込む（存在しない場合は何もしない）
func loadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "failed to load dotenv, path: %s", p)
		}
	}
	return nil
}
