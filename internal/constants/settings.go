package constants

const (
	// Setting keys
	SettingCategories = "categories"
	SettingTimezone   = "timezone"

	// DefaultTimezone uses the system local timezone
	DefaultTimezone = "Local"
)

// DefaultCategories are seeded into settings on init.
var DefaultCategories = []string{
	"Coding",
	"Job Search",
	"Health",
	"Learning",
	"Admin",
	"Personal",
}
