package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile holds the connection coordinates of one Databricks workspace, read
// from a databrickscfg-style ini file.
type Profile struct {
	Name     string
	Host     string
	Token    string
	HTTPPath string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:     name,
		Host:     section.Key("host").String(),
		Token:    section.Key("token").String(),
		HTTPPath: section.Key("http_path").String(),
	}, nil
}
