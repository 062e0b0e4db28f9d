package models

// CategoryDef defines the display properties of a known category.
type CategoryDef struct {
	Name  string
	Icon  string
	Color string
}

// Categories lists the labels that carry their own icon. Any other label is
// still a valid category and is shown with FallbackIcon.
var Categories = []CategoryDef{
	{"Food", "fas fa-utensils", "#4FC3F7"},
	{"Transport", "fas fa-bus", "#81C784"},
	{"Home", "fas fa-home", "#FF8A80"},
	{"Health", "fas fa-heartbeat", "#FFF176"},
	{"Entertainment", "fas fa-film", "#9575CD"},
	{"Gifts", "fas fa-gift", "#FFB74D"},
	{"Other", "fas fa-circle", "#4DB6AC"},
}

const (
	FallbackIcon  = "fas fa-circle"
	FallbackColor = "#94a3b8"
)

// CategoryStyle defines the visual style for a category.
type CategoryStyle struct {
	Icon  string
	Color string
}

// StyleOf returns the style of category. Labels are matched exactly, as they
// are stored.
func StyleOf(category string) CategoryStyle {
	for _, c := range Categories {
		if c.Name == category {
			return CategoryStyle{Icon: c.Icon, Color: c.Color}
		}
	}
	return CategoryStyle{Icon: FallbackIcon, Color: FallbackColor}
}
