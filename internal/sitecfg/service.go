package sitecfg

import (
	"context"
	"errors"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Service owns the singleton configuration documents. A missing document
// is returned as its zero value, so a fresh installation serves empty
// config instead of 404s.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Contact(ctx context.Context) (ContactInfo, error) {
	var info ContactInfo
	if err := s.repo.Load(ctx, keyContact, &info); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return ContactInfo{}, err
	}
	return info, nil
}

func (s *Service) SaveContact(ctx context.Context, info ContactInfo) error {
	return s.repo.Save(ctx, keyContact, info)
}

func (s *Service) AboutUs(ctx context.Context) (AboutUs, error) {
	var about AboutUs
	if err := s.repo.Load(ctx, keyAboutUs, &about); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return AboutUs{}, err
	}
	about.AdvantageList = shared.SplitSections(about.Advantages)
	return about, nil
}

func (s *Service) SaveAboutUs(ctx context.Context, about AboutUs) error {
	// The derived list is never persisted.
	about.AdvantageList = nil
	return s.repo.Save(ctx, keyAboutUs, about)
}
