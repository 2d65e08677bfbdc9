package tagger

import (
	"context"

	"github.com/0x0BSoD/newsBoard/internal/textmatch"
)

// VocabularyStrategy reports every known topic phrase found anywhere in the text.
type VocabularyStrategy struct {
	matcher *textmatch.Matcher
}

func NewVocabularyStrategy(vocabulary []string) *VocabularyStrategy {
	return &VocabularyStrategy{matcher: textmatch.New(vocabulary)}
}

func (s *VocabularyStrategy) Name() string { return "vocabulary" }

// Size reports the number of distinct phrases the strategy looks for.
func (s *VocabularyStrategy) Size() int { return s.matcher.Len() }

func (s *VocabularyStrategy) Extract(_ context.Context, text string) ([]string, error) {
	return s.matcher.Find(text), nil
}

// DefaultVocabulary is the curated list of topic phrases.
var DefaultVocabulary = []string{
	// technology and science
	"technology", "tech", "artificial intelligence", "science", "space", "nasa", "astronomy",
	"engineering", "mathematics", "programming", "coding", "web development", "software",
	"data science", "machine learning", "big data", "cloud computing", "cybersecurity", "privacy",
	"cryptocurrency", "blockchain", "gadgets", "tech reviews", "apps", "mobile", "android", "ios",
	"design", "photography",
	// nature
	"animals", "zoology", "biology", "lion", "tiger", "environment", "climate", "ecology",
	"climate change", "renewable energy", "pollution", "conservation", "wildlife", "biodiversity",
	"sustainability", "sustainable living", "natural disasters",
	// society
	"education", "university", "school", "e-learning", "history", "philosophy", "psychology",
	"sociology", "politics", "election", "elections", "world news", "local news", "government",
	"policy", "law", "legal news", "war", "conflict", "crime", "justice", "political satire",
	// money
	"finance", "stocks", "investment", "investing", "personal finance", "stock market",
	"real estate", "startups", "entrepreneurship", "business news", "economy", "economics",
	"trade", "marketing", "sales", "leadership", "management",
	// health
	"health", "medicine", "covid", "mental health", "nutrition", "fitness", "exercise", "diseases",
	"medical breakthroughs", "women's health", "men's health", "healthcare", "yoga", "mindfulness",
	"sleep",
	// culture and entertainment
	"music", "art", "culture", "literature", "books", "writing", "visual arts", "performing arts",
	"theater", "dance", "cultural commentary", "museums", "exhibitions", "movies", "cinema",
	"tv shows", "series", "television", "streaming", "podcasts", "comics", "anime", "manga",
	"comedy", "humor", "albums", "celebrities", "gossip", "awards", "pop culture", "netflix",
	"prime video",
	// sports and games
	"sports", "football", "basketball", "cricket", "gaming", "video games", "esports",
	"game reviews", "walkthroughs", "tournaments", "mobile games", "game development",
	// lifestyle
	"travel", "destinations", "food", "cooking", "recipes", "lifestyle", "home decor", "fashion",
	"style", "beauty", "grooming", "diy", "crafts", "gardening", "pets", "backpacking",
	"solo travel", "travel hacks", "hidden gems", "cultural etiquette", "adventure",
	"relationships", "dating", "family", "parenting", "self-help", "life advice",
	"personal growth",
	// mobility
	"automotive", "cars", "electric vehicles", "car reviews", "public transport", "mobility",
	"bikes", "scooters",
	// work
	"career", "jobs", "resume", "job hunting", "freelancing", "remote work", "work culture",
	"productivity", "time management",
	// internet
	"social media", "internet culture", "memes", "tiktok", "instagram", "youtube",
	"viral content", "online communities", "reddit", "discord",
	// shopping
	"product reviews", "buying guides", "online shopping", "e-commerce", "deals", "discounts",
}
