package models

// NoParent is displayed in place of a missing parent name.
const NoParent = "--"

// Category represents a spending category (e.g. Food) or a subcategory
// (e.g. Groceries under Food).
type Category struct {
	Base
	Name       string  `gorm:"size:100;not null" json:"name"`
	ParentID   *uint   `gorm:"index" json:"parent"`
	ParentName *string `gorm:"-" json:"parent_name"`
	UserID     uint    `gorm:"not null;index" json:"user"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
}

// DisplayParent returns the parent name, or NoParent when there is none.
func (c Category) DisplayParent() string {
	if c.ParentName == nil || *c.ParentName == "" {
		return NoParent
	}
	return *c.ParentName
}

// ResolveParentName fills ParentName from a loaded Parent relation.
func (c *Category) ResolveParentName() {
	if c.Parent == nil {
		c.ParentName = nil
		return
	}
	name := c.Parent.Name
	c.ParentName = &name
}

// CategoryInput is the payload used to create a category.
type CategoryInput struct {
	Name   string `json:"name" validate:"notblank,max=100"`
	Parent *uint  `json:"parent"`
}

// CategoryPatch is a partial category update. Nil or unset fields are left
// unchanged.
type CategoryPatch struct {
	Name   *string    `json:"name,omitempty" validate:"omitnil,notblank,max=100"`
	Parent OptionalID `json:"parent,omitzero"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && !p.Parent.Set
}
