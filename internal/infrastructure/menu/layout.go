package menu

import "github.com/menuscraper/backend/internal/domain"

// CSS selectors for the menu index and product pages
const (
	// ProductLinkSelector matches every product anchor in the category listing
	ProductLinkSelector = ".cmp-category__row > li.cmp-category__item > a"

	// DetailsButtonSelector matches the accordion button revealing the secondary nutrition panel
	DetailsButtonSelector = "h2.cmp-accordion__header > button.cmp-accordion__button"

	NameSelector        = "span.cmp-product-details-main__heading-title"
	DescriptionSelector = "div.cmp-text"

	valueSelector = "span.value > span"
)

// slot binds the value span at Span inside the Item-th group element to a field
type slot struct {
	Field string
	Item  int
	Span  int
}

// group is one nutrition region of the product page
type group struct {
	Name     string
	Selector string
	Slots    []slot
}

// nutritionLayout maps page positions to product fields. Fields are identified
// by position only; nothing on the page confirms which nutrient a slot holds,
// so a redesign of the product page means editing this table.
//
// The secondary order (unsaturated, sugar, salt, portion) is assumed from the
// live site and has not been verified against every product.
var nutritionLayout = []group{
	{
		Name:     "primary",
		Selector: "ul.cmp-nutrition-summary__heading-primary > li.cmp-nutrition-summary__heading-primary-item",
		Slots: []slot{
			{Field: domain.FieldCalories, Item: 0, Span: 2},
			{Field: domain.FieldFats, Item: 1, Span: 2},
			{Field: domain.FieldCarbs, Item: 2, Span: 2},
			{Field: domain.FieldProteins, Item: 3, Span: 2},
		},
	},
	{
		Name:     "secondary",
		Selector: "div.cmp-nutrition-summary__details-column-view-mobile > ul > li.label-item",
		Slots: []slot{
			{Field: domain.FieldUnsaturated, Item: 0, Span: 0},
			{Field: domain.FieldSugar, Item: 1, Span: 0},
			{Field: domain.FieldSalt, Item: 2, Span: 0},
			{Field: domain.FieldPortion, Item: 3, Span: 0},
		},
	},
}
