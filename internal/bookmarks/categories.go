package bookmarks

var categories = []string{
	"Technology",
	"Science",
	"Health & Fitness",
	"Business & Finance",
	"Politics & Current Affairs",
	"Education & Learning",
	"History & Culture",
	"Travel & Adventure",
	"Food & Nutrition",
	"Sports",
	"Entertainment (Movies, TV, Music)",
	"Gaming",
	"Art & Design",
	"Literature & Books",
	"Environment & Sustainability",
	"Relationships & Lifestyle",
	"Self-Improvement & Productivity",
	"Fashion & Beauty",
	"Religion & Spirituality",
	"Startups & Entrepreneurship",
	"Law & Justice",
	"Opinion & Editorials",
	"Cryptocurrency & Blockchain",
}

// PreferenceCategories returns the fixed list of categories offered at onboarding.
func PreferenceCategories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
