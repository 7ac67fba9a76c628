package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every environment variable, e.g. TERMSURFACE_API_URL.
const Prefix = "TERMSURFACE"

// ErrMissingURL is returned when TERMSURFACE_API_URL is not set.
var ErrMissingURL = errors.New("TERMSURFACE_API_URL is not set")

type Settings struct {
	APIURL  string `envconfig:"API_URL"`
	Prompt  string `envconfig:"PROMPT" default:"terminal: "`
	Tokens  Pairs  `envconfig:"TOKENS"`
	Style   Pairs  `envconfig:"STYLE"`
	Payload string `envconfig:"PAYLOAD" default:"form"`
	LogFile string `envconfig:"LOG_FILE"`
}

// Pairs is a comma-separated list of name:value pairs. Each pair splits on
// its first colon, so values may contain colons but not commas.
type Pairs map[string]string

// Decode implements envconfig.Decoder.
func (p *Pairs) Decode(value string) error {
	out := Pairs{}
	for _, pair := range strings.Split(value, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		name, val, ok := strings.Cut(pair, ":")
		if !ok || name == "" {
			return fmt.Errorf("invalid pair %q: want name:value", pair)
		}
		out[name] = val
	}
	*p = out
	return nil
}

// Load reads settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process(Prefix, &s); err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}

	if s.APIURL == "" {
		return Settings{}, ErrMissingURL
	}
	u, err := url.Parse(s.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Settings{}, fmt.Errorf("invalid %s_API_URL %q: want an http(s) URL", Prefix, s.APIURL)
	}

	if s.Payload != "form" && s.Payload != "json" {
		return Settings{}, fmt.Errorf("invalid %s_PAYLOAD %q: want form or json", Prefix, s.Payload)
	}
	return s, nil
}
