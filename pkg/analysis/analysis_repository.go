package analysis

import (
	"Taxflow-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RuleRepository interface {
		CreateRule(ctx context.Context, rule *entities.AnalysisRule) error
		GetRuleByID(ctx context.Context, id string) (*entities.AnalysisRule, error)
		GetRules(ctx context.Context) ([]*entities.AnalysisRule, error)
		UpdateRule(ctx context.Context, rule *entities.AnalysisRule) error
		DeleteRule(ctx context.Context, id string) error
	}

	ruleRepository struct {
		db *gorm.DB
	}
)

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) CreateRule(ctx context.Context, rule *entities.AnalysisRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) GetRuleByID(ctx context.Context, id string) (*entities.AnalysisRule, error) {
	var rule entities.AnalysisRule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) GetRules(ctx context.Context) ([]*entities.AnalysisRule, error) {
	var rules []*entities.AnalysisRule
	if err := r.db.WithContext(ctx).Order("position asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) UpdateRule(ctx context.Context, rule *entities.AnalysisRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ruleRepository) DeleteRule(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.AnalysisRule{}).Error
}
