package config

import (
	"context"
	"fmt"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry exposes the dataset profiles declared in an ini file:
//
//	[olist]
//	csv = data/all_data.csv
//	db = olist.db
//	currency = BRL
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.DatasetProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (domain.DatasetProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.DatasetProfile{}, fmt.Errorf("profile %s not found", name)
	}

	profile := domain.DatasetProfile{
		Name:     name,
		CSVPath:  section.Key("csv").String(),
		DBPath:   section.Key("db").String(),
		Currency: section.Key("currency").String(),
	}
	if profile.DBPath == "" {
		return domain.DatasetProfile{}, fmt.Errorf("profile %s: db is required", name)
	}
	return profile, nil
}
