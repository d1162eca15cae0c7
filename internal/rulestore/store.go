// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

// Package rulestore persists the ordered sort rule list as a YAML file. The
// list order is the rule evaluation order, so the store never reorders rules
// behind the user's back; Load hands callers a fresh slice each time, giving
// every comparison run its own immutable snapshot.
package rulestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/util"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

type Store struct {
	path string
}

type rulesFile struct {
	Rules []model.SortRule `yaml:"rules"`
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the rule list. A missing file is an empty rule set, not an error.
func (s *Store) Load() ([]model.SortRule, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rules file %s: %w", s.path, err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", s.path, err)
	}
	return f.Rules, nil
}

// Save writes the full rule list atomically: to a temp file in the same
// directory, then renamed over the target.
func (s *Store) Save(rules []model.SortRule) error {
	if err := util.EnsureFileFolderHierarchy(s.path); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}

	data, err := yaml.Marshal(rulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".rules-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp rules file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write rules: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp rules file: %w", err)
	}

	return os.Rename(tmp.Name(), s.path)
}

// Add validates the rule, assigns it a fresh id and appends it at the end of
// the evaluation order.
func (s *Store) Add(rule model.SortRule) (model.SortRule, error) {
	if err := rule.Validate(); err != nil {
		return model.SortRule{}, err
	}

	rules, err := s.Load()
	if err != nil {
		return model.SortRule{}, err
	}

	rule.ID = ksuid.New().String()
	rules = append(rules, rule)

	if err := s.Save(rules); err != nil {
		return model.SortRule{}, err
	}
	return rule, nil
}

func (s *Store) Remove(id string) error {
	rules, err := s.Load()
	if err != nil {
		return err
	}

	kept := rules[:0]
	for _, r := range rules {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rules) {
		return fmt.Errorf("no rule with id %s", id)
	}

	return s.Save(kept)
}

func (s *Store) SetEnabled(id string, enabled bool) error {
	rules, err := s.Load()
	if err != nil {
		return err
	}

	for i := range rules {
		if rules[i].ID == id {
			rules[i].Enabled = enabled
			return s.Save(rules)
		}
	}
	return fmt.Errorf("no rule with id %s", id)
}

// Reorder moves the rule with the given id to position (0-based) in the
// evaluation order, clamping positions past either end.
func (s *Store) Reorder(id string, position int) error {
	rules, err := s.Load()
	if err != nil {
		return err
	}

	from := -1
	for i := range rules {
		if rules[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("no rule with id %s", id)
	}

	if position < 0 {
		position = 0
	}
	if position >= len(rules) {
		position = len(rules) - 1
	}

	rule := rules[from]
	rules = append(rules[:from], rules[from+1:]...)
	rules = append(rules[:position], append([]model.SortRule{rule}, rules[position:]...)...)

	return s.Save(rules)
}

// Get returns the rule with the given id.
func (s *Store) Get(id string) (model.SortRule, error) {
	rules, err := s.Load()
	if err != nil {
		return model.SortRule{}, err
	}

	for _, r := range rules {
		if r.ID == id {
			return r, nil
		}
	}
	return model.SortRule{}, fmt.Errorf("no rule with id %s", id)
}
