package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"xdao.co/paint/document"
	"xdao.co/paint/storage/storeconfig"
)

type serviceConfig struct {
	Listen      string
	LogLevel    string
	CORSOrigins []string
	PNGSize     int
	TraitSeed   string
	Collection  document.Collection

	// TemplatePath is a full SVG with dynamic content markers. TemplateStart
	// and TemplateEnd are pre-split parts and take precedence when both are set.
	TemplatePath  string
	TemplateStart string
	TemplateEnd   string

	Store storeconfig.Config
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		Listen:      "127.0.0.1:8080",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:3000"},
		PNGSize:     512,
		TraitSeed:   "paint",
		Collection: document.Collection{
			Name:        "Paint",
			Description: "A canvas painted with the tools its trait grants.",
		},
		Store: storeconfig.Config{
			WritePolicy: "first",
			Backends:    []storeconfig.BackendConfig{{Name: "memory"}},
		},
	}
}

type fileConfig struct {
	Listen      string              `toml:"listen"`
	LogLevel    string              `toml:"log_level"`
	CORSOrigins []string            `toml:"cors_origins"`
	PNGSize     int                 `toml:"png_size"`
	TraitSeed   string              `toml:"trait_seed"`
	Collection  document.Collection `toml:"collection"`
	Template    struct {
		Path  string `toml:"path"`
		Start string `toml:"start"`
		End   string `toml:"end"`
	} `toml:"template"`
	Store storeconfig.Config `toml:"store"`
}

func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load paintd config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return serviceConfig{}, fmt.Errorf("load paintd config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CORSOrigins = raw.CORSOrigins
	}
	if meta.IsDefined("png_size") {
		if raw.PNGSize <= 0 {
			return serviceConfig{}, fmt.Errorf("png_size must be positive, got %d", raw.PNGSize)
		}
		cfg.PNGSize = raw.PNGSize
	}
	if meta.IsDefined("trait_seed") {
		cfg.TraitSeed = raw.TraitSeed
	}

	if meta.IsDefined("collection", "name") {
		cfg.Collection.Name = raw.Collection.Name
	}
	if meta.IsDefined("collection", "description") {
		cfg.Collection.Description = raw.Collection.Description
	}
	if meta.IsDefined("collection", "external_url") {
		cfg.Collection.ExternalURL = strings.TrimSpace(raw.Collection.ExternalURL)
	}

	if meta.IsDefined("template", "path") {
		cfg.TemplatePath = strings.TrimSpace(raw.Template.Path)
	}
	if meta.IsDefined("template", "start") {
		cfg.TemplateStart = strings.TrimSpace(raw.Template.Start)
	}
	if meta.IsDefined("template", "end") {
		cfg.TemplateEnd = strings.TrimSpace(raw.Template.End)
	}
	if (cfg.TemplateStart == "") != (cfg.TemplateEnd == "") {
		return serviceConfig{}, fmt.Errorf("template start and end must be set together")
	}

	if meta.IsDefined("store") {
		if meta.IsDefined("store", "write_policy") {
			cfg.Store.WritePolicy = raw.Store.WritePolicy
		}
		if meta.IsDefined("store", "backends") {
			cfg.Store.Backends = raw.Store.Backends
		}
		if err := cfg.Store.Validate(); err != nil {
			return serviceConfig{}, err
		}
	}
	return cfg, nil
}
