package filter

// Plain substring matches against the lower-cased text, so "15 years" also hits "5 years".
var (
	includeKeywords = []string{"3 years", "2-4 years", "2-3 years", "3-5 years", "mid level", "intermediate", "junior"}
	excludeKeywords = []string{"5 years", "6 years", "7 years", "8 years", "senior", "10 years", "5+ years"}
)
