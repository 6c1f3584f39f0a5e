package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promisekeeper/internal/common"
)

// FailureCategory classifies why a promise was missed.
type FailureCategory string

const (
	CategoryTimeConstraint     FailureCategory = "TIME_CONSTRAINT"
	CategoryResourceLimitation FailureCategory = "RESOURCE_LIMITATION"
	CategoryExternalFactors    FailureCategory = "EXTERNAL_FACTORS"
	CategoryMotivationLoss     FailureCategory = "MOTIVATION_LOSS"
	CategoryUnclearGoals       FailureCategory = "UNCLEAR_GOALS"
	CategoryOvercommitment     FailureCategory = "OVERCOMMITMENT"
	CategorySkillGap           FailureCategory = "SKILL_GAP"
)

type categoryInfo struct {
	code  string
	label string
}

// categoryTable is the boundary mapping between legacy numeric codes, the
// named constants and the human labels used in prompts.
var categoryTable = map[FailureCategory]categoryInfo{
	CategoryTimeConstraint:     {"1", "Time constraint"},
	CategoryResourceLimitation: {"2", "Resource limitation"},
	CategoryExternalFactors:    {"3", "External factors"},
	CategoryMotivationLoss:     {"4", "Motivation loss"},
	CategoryUnclearGoals:       {"5", "Unclear goals"},
	CategoryOvercommitment:     {"6", "Overcommitment"},
	CategorySkillGap:           {"7", "Skill gap"},
}

// Categories lists every category in legacy code order.
var Categories = []FailureCategory{
	CategoryTimeConstraint,
	CategoryResourceLimitation,
	CategoryExternalFactors,
	CategoryMotivationLoss,
	CategoryUnclearGoals,
	CategoryOvercommitment,
	CategorySkillGap,
}

// ParseFailureCategory accepts a named constant (any case) or a legacy code
// "1".."7".
func ParseFailureCategory(s string) (FailureCategory, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return "", fmt.Errorf("%w: category is required", common.ErrorValidation)
	}
	if _, ok := categoryTable[FailureCategory(v)]; ok {
		return FailureCategory(v), nil
	}
	for c, info := range categoryTable {
		if info.code == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", common.ErrorValidation, s)
}

// Code returns the legacy numeric code.
func (c FailureCategory) Code() string {
	return categoryTable[c].code
}

// Label returns the human-readable name, or the raw value when unknown.
func (c FailureCategory) Label() string {
	if info, ok := categoryTable[c]; ok {
		return info.label
	}
	return string(c)
}
