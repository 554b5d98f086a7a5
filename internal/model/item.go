package model

type Item struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:255;not null;index"`
	Description string  `gorm:"type:text;not null"`
	Price       float64 `gorm:"not null"`
	Quantity    int     `gorm:"not null"`
}

func (Item) TableName() string {
	return "items"
}

// ItemPatch holds one optional slot per mutable Item field. A nil slot means
// "leave unchanged".
type ItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
}

func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Quantity == nil
}

// Apply merges the present slots into item. ID is never modified.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
}
