package postgres

import (
	"fmt"
	"strings"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddFloatFilter adds inclusive bounds; nil bounds are skipped.
func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// build returns the WHERE clause (empty when nothing is filtered) and its args.
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyFilters turns the property filter into SQL predicates over alias p.
func applyFilters(filter domain.PropertyFilter) (string, []interface{}) {
	qb := newQueryBuilder()

	if filter.Status != nil {
		qb.addCondition("%s = $%d", "p.status", string(*filter.Status))
	}
	if filter.Type != nil {
		qb.addCondition("%s = $%d", "p.type", string(*filter.Type))
	}
	qb.AddFloatFilter("p.price", filter.PriceMin, filter.PriceMax)
	if filter.Category != nil {
		qb.addCondition("%s = $%d", "p.category", *filter.Category)
	}
	qb.AddFloatFilter("p.area", filter.AreaMin, filter.AreaMax)
	// bedrooms only has a lower bound
	if filter.MinBedrooms != nil {
		qb.addCondition("%s >= $%d", "p.bedrooms", *filter.MinBedrooms)
	}

	return qb.build()
}
