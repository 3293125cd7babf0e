package domain

type Board struct {
	Slug        BoardSlug `yaml:"slug" json:"slug" validate:"required"`
	Name        string    `yaml:"name" json:"name" validate:"required"`
	Description string    `yaml:"description" json:"description"`
}
