// Package config는 viper 기반 설정 로더입니다.
// 설정 파일은 선택 사항이며, 모든 키는 환경 변수로 덮어쓸 수 있습니다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 인터페이스는 로드된 설정을 서비스 구조체로 옮깁니다.
type Config interface {
	Unmarshal(out interface{}) error
}

// viperConfig는 viper를 사용하여 Config 인터페이스를 구현합니다.
type viperConfig struct {
	v *viper.Viper
}

// Unmarshal은 전체 설정을 mapstructure 태그 기준으로 구조체에 채웁니다.
func (c *viperConfig) Unmarshal(out interface{}) error {
	return c.v.Unmarshal(out)
}

// Option은 로더 동작을 조정합니다.
type Option func(*loader)

type loader struct {
	defaults map[string]interface{}
	aliases  map[string][]string
}

// WithDefaults는 키별 기본값을 등록합니다. 기본값이 있는 키만 Unmarshal 시 환경 변수가 반영됩니다.
func WithDefaults(defaults map[string]interface{}) Option {
	return func(l *loader) {
		for k, v := range defaults {
			l.defaults[k] = v
		}
	}
}

// WithEnvAliases는 접두사 없는 환경 변수 이름을 키에 추가로 연결합니다.
func WithEnvAliases(aliases map[string][]string) Option {
	return func(l *loader) {
		for k, names := range aliases {
			l.aliases[k] = append(l.aliases[k], names...)
		}
	}
}

// 설정 디렉토리 경로
const configDir = "configs"

// Load는 지정된 서비스 이름에 해당하는 설정을 로드합니다.
//
// 파일 위치: CONFIG_PATH가 .yaml/.yml 파일이면 그 파일, 디렉토리면 그 디렉토리,
// 없으면 configs/{APP_ENV}/{service}.yaml. 기본 경로에 파일이 없으면 환경 변수와 기본값만 사용합니다.
func Load(serviceName string, opts ...Option) (Config, error) {
	l := &loader{
		defaults: map[string]interface{}{},
		aliases:  map[string][]string{},
	}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// 환경 변수 바인딩 설정
	prefix := strings.ToUpper(serviceName)
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}
	for key, names := range l.aliases {
		prefixed := prefix + "_" + strings.ToUpper(replacer.Replace(key))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("환경 변수 바인딩 실패 (%s): %w", key, err)
		}
	}

	configPath := os.Getenv("CONFIG_PATH")
	ext := strings.ToLower(filepath.Ext(configPath))
	if ext == ".yaml" || ext == ".yml" {
		// 명시적으로 지정된 파일은 반드시 존재해야 합니다
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("설정 파일 로드 실패: %w", err)
		}
		return &viperConfig{v: v}, nil
	}

	if configPath == "" {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev" // 기본 환경은 dev
		}
		configPath = filepath.Join(configDir, env)
	}
	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("설정 파일 로드 실패: %w", err)
		}
	}

	return &viperConfig{v: v}, nil
}
