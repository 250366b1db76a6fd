// Package config holds the tool-wide configuration: upstream remote naming,
// unstable tag exclusion globs, registry credentials and the reviewer quota
// table used when composing review requests.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the resolved tool configuration.
type Config struct {
	// UpstreamRemote is the fixed name for the synthetic upstream remote.
	UpstreamRemote string `mapstructure:"upstream_remote"`
	// UnstableTagPatterns are describe-exclude globs for pre-release tags.
	UnstableTagPatterns []string `mapstructure:"unstable_tag_patterns"`
	// GitHubToken authenticates GitHub API calls; empty means anonymous.
	GitHubToken string `mapstructure:"github_token"`
	// Reviewers is the quota table for weighted reviewer selection.
	Reviewers []ReviewerQuota `mapstructure:"reviewers"`
}

// ReviewerQuota gives one reviewer a relative share of review assignments.
type ReviewerQuota struct {
	Email string `mapstructure:"email"`
	Quota int    `mapstructure:"quota"`
}

// Load reads configuration from path (optional) layered over environment
// variables (VENDSYNC_ prefix) and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("upstream_remote", "update_origin")
	v.SetDefault("unstable_tag_patterns", []string{
		"*alpha*", "*Alpha*", "*ALPHA*",
		"*beta*", "*Beta*", "*BETA*",
		"*rc*", "*RC*",
		"*test*", "*Test*",
	})
	v.SetEnvPrefix("VENDSYNC")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
