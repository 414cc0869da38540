package ledger

import (
	"fmt"
	"slices"
	"strings"

	"btcwallet/internal/domain"
)

type CategoryValidator struct {
	categoriesSet map[string]struct{} // read only
	categoriesLst []string            // read only, sorted
}

func (v *CategoryValidator) ValidateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidCategory)
	}
	if _, ok := v.categoriesSet[category]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
	return nil
}

func (v *CategoryValidator) SupportedCategories() []string {
	return slices.Clone(v.categoriesLst)
}

func NewCategoryValidator(categories []string) *CategoryValidator {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	lst := make([]string, 0, len(set))
	for c := range set {
		lst = append(lst, c)
	}
	slices.Sort(lst)

	return &CategoryValidator{
		categoriesSet: set,
		categoriesLst: lst,
	}
}
