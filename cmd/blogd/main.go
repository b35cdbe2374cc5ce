// Command blogd serves the blog frontend over the upstream WPGraphQL
// content source. Configuration comes from flags, environment
// variables, or an optional YAML config file, in that precedence.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"

	blog "github.com/bradleydoering/cloudrenovation-blog"
)

var cli struct {
	Config string `help:"YAML config file path." type:"path"`
	Debug  bool   `help:"Enable debug logging." default:"false"`

	Addr            string        `help:"Listen address." default:":3000" env:"ADDR"`
	SiteName        string        `help:"Site name." env:"SITE_NAME"`
	SiteURL         string        `help:"Canonical site URL." env:"SITE_URL"`
	SiteDescription string        `help:"Site description for meta tags and the feed." env:"SITE_DESCRIPTION"`
	SiteAuthor      string        `help:"Fallback author name for structured data." env:"SITE_AUTHOR"`
	GraphQLEndpoint string        `help:"Upstream WPGraphQL endpoint (required)." env:"WP_GRAPHQL_ENDPOINT"`
	RevalidateToken string        `help:"Shared secret for the revalidation webhook." env:"REVALIDATE_TOKEN"`
	CacheWindow     time.Duration `help:"Response and page cache TTL." default:"60s" env:"CACHE_WINDOW"`
}

func main() {
	kong.Parse(&cli)

	if cli.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg := blog.SiteConfig{
		Name:            cli.SiteName,
		URL:             cli.SiteURL,
		Description:     cli.SiteDescription,
		Author:          cli.SiteAuthor,
		Addr:            cli.Addr,
		GraphQLEndpoint: cli.GraphQLEndpoint,
		RevalidateToken: cli.RevalidateToken,
		CacheWindow:     cli.CacheWindow,
	}
	if cli.Config != "" {
		if err := applyConfigFile(cli.Config, &cfg); err != nil {
			slog.Error("load config file failed", "path", cli.Config, "error", err)
			os.Exit(1)
		}
	}

	app := blog.New(cfg, defaultViews(cfg))
	if err := app.Start(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// applyConfigFile fills in values the flags and environment left empty.
func applyConfigFile(path string, cfg *blog.SiteConfig) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	setIfEmpty(&cfg.Name, v.GetString("site.name"))
	setIfEmpty(&cfg.URL, v.GetString("site.url"))
	setIfEmpty(&cfg.Description, v.GetString("site.description"))
	setIfEmpty(&cfg.Author, v.GetString("site.author"))
	setIfEmpty(&cfg.GraphQLEndpoint, v.GetString("upstream.endpoint"))
	setIfEmpty(&cfg.RevalidateToken, v.GetString("revalidate.token"))
	if cfg.CacheWindow == 0 {
		cfg.CacheWindow = v.GetDuration("upstream.cache_window")
	}
	return nil
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
