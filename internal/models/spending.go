package models

// Uncategorized is displayed in place of a missing category name.
const Uncategorized = "Uncategorized"

// Spending represents a single spending transaction.
type Spending struct {
	Base
	Description  string  `gorm:"size:100" json:"description"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Amount       Amount  `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date         Date    `gorm:"not null;index" json:"date"`
	CategoryID   *uint   `gorm:"index" json:"category"`
	CategoryName *string `gorm:"-" json:"category_name"`
	UserID       uint    `gorm:"not null;index" json:"user"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

// DisplayCategory returns the category name, or Uncategorized when there is none.
func (s Spending) DisplayCategory() string {
	if s.CategoryName == nil || *s.CategoryName == "" {
		return Uncategorized
	}
	return *s.CategoryName
}

// ResolveCategoryName fills CategoryName from a loaded Category relation.
func (s *Spending) ResolveCategoryName() {
	if s.Category == nil {
		s.CategoryName = nil
		return
	}
	name := s.Category.Name
	s.CategoryName = &name
}

// SpendingInput is the full set of editable spending fields. It doubles as
// the inline edit buffer.
type SpendingInput struct {
	Name        string     `json:"name" validate:"notblank,max=100"`
	Description string     `json:"description" validate:"max=100"`
	Amount      AmountText `json:"amount" validate:"decimal2"`
	Date        string     `json:"date" validate:"civil_date"`
	Category    *uint      `json:"category"`
}

// Normalize maps an empty or zero category to nil.
func (in SpendingInput) Normalize() SpendingInput {
	in.Category = NormalizeID(in.Category)
	return in
}

// InputFrom seeds an input from an existing spending.
func InputFrom(s Spending) SpendingInput {
	return SpendingInput{
		Name:        s.Name,
		Description: s.Description,
		Amount:      AmountText(s.Amount.String()),
		Date:        s.Date.String(),
		Category:    NormalizeID(s.CategoryID),
	}
}

// SpendingPatch is a partial spending update. Nil or unset fields are left
// unchanged.
type SpendingPatch struct {
	Name        *string     `json:"name,omitempty" validate:"omitnil,notblank,max=100"`
	Description *string     `json:"description,omitempty" validate:"omitnil,max=100"`
	Amount      *AmountText `json:"amount,omitempty" validate:"omitnil,decimal2"`
	Date        *string     `json:"date,omitempty" validate:"omitnil,civil_date"`
	Category    OptionalID  `json:"category,omitzero"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SpendingPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Amount == nil && p.Date == nil && !p.Category.Set
}

// Patch returns the input as a patch that replaces every editable field.
func (in SpendingInput) Patch() SpendingPatch {
	in = in.Normalize()
	p := SpendingPatch{
		Name:        &in.Name,
		Description: &in.Description,
		Amount:      &in.Amount,
		Date:        &in.Date,
	}
	if in.Category == nil {
		p.Category = Clear()
	} else {
		p.Category = SetID(*in.Category)
	}
	return p
}
