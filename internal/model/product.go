package model

import "github.com/shopspring/decimal"

// Product is a sellable item shown on the retail price list.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    ProductCategory `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Timestamps
}

type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Price       decimal.Decimal `json:"price"`
	Category    ProductCategory `json:"category" binding:"omitempty,enum"`
	Description string          `json:"description"`
}

func (r *ProductRequest) Apply(p *Product) {
	p.Name = r.Name
	p.Price = r.Price.Round(2)
	p.Category = r.Category
	if p.Category == "" {
		p.Category = ProductCategoryService
	}
	p.Description = r.Description
}

type ProductFilter struct {
	Category ProductCategory `form:"category" binding:"omitempty,enum"`
}
