package services

import (
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/selection"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

// ScenarioList is the response of ListScenarios. Required reports whether the
// category has scenarios at all; an empty, non-required list is valid.
type ScenarioList struct {
	Items    []taxonomy.Item `json:"items"`
	Required bool            `json:"required"`
}

type NavigationService interface {
	ListDomains() ([]taxonomy.Item, error)
	ListRecipients(domainID string) ([]taxonomy.Item, error)
	ListCategories(domainID, recipientID string) ([]taxonomy.Item, error)
	ListScenarios(domainID, recipientID, categoryID string) (ScenarioList, error)
	Stats() taxonomy.Stats
}

type navigationService struct {
	store *taxonomy.Store
	log   *logger.Logger
}

func NewNavigationService(store *taxonomy.Store, log *logger.Logger) NavigationService {
	return &navigationService{store: store, log: log.With("service", "NavigationService")}
}

func (s *navigationService) ListDomains() ([]taxonomy.Item, error) {
	return s.store.ChildrenAt(nil)
}

func (s *navigationService) ListRecipients(domainID string) ([]taxonomy.Item, error) {
	p, err := selection.FromIDs(domainID, "", "", "")
	if err != nil {
		return nil, err
	}
	return s.childrenOf(p, selection.LevelRecipient)
}

func (s *navigationService) ListCategories(domainID, recipientID string) ([]taxonomy.Item, error) {
	p, err := selection.FromIDs(domainID, recipientID, "", "")
	if err != nil {
		return nil, err
	}
	return s.childrenOf(p, selection.LevelCategory)
}

func (s *navigationService) ListScenarios(domainID, recipientID, categoryID string) (ScenarioList, error) {
	p, err := selection.FromIDs(domainID, recipientID, categoryID, "")
	if err != nil {
		return ScenarioList{}, err
	}
	items, err := s.childrenOf(p, selection.LevelScenario)
	if err != nil {
		return ScenarioList{}, err
	}
	required, err := p.RequiresScenario(s.store)
	if err != nil {
		return ScenarioList{}, err
	}
	return ScenarioList{Items: items, Required: required}, nil
}

func (s *navigationService) Stats() taxonomy.Stats { return s.store.Stats() }

// childrenOf lists the children of p, which must reach the level just above want.
func (s *navigationService) childrenOf(p selection.Path, want selection.Level) ([]taxonomy.Item, error) {
	if p.Depth() != int(want) {
		return nil, &selection.LevelOrderError{Level: want, Reason: want.String() + " needs every parent level"}
	}
	items, err := s.store.ChildrenAt(p.IDs())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []taxonomy.Item{}
	}
	return items, nil
}
