package spamdetector

// Phrases that mark promotional or low-value pages. Matching is
// case-insensitive substring matching; keep phrases lower-case.
var spamPhrases = []string{
	"act now",
	"limited time offer",
	"buy now",
	"click here to buy",
	"exclusive deal",
	"discount code",
	"coupon code",
	"free shipping",
	"money back guarantee",
	"no credit check",
	"earn money fast",
	"work from home",
	"risk free",
	"100% free",
	"claim your prize",
	"you have been selected",
	"this is not spam",
	"as seen on tv",
	"lowest price",
	"best price guaranteed",
	"cheap viagra",
	"online casino",
	"crypto giveaway",
	"double your bitcoin",
	"affiliate link",
	"sponsored post",
}

// Weights for phrases that are stronger spam signals than the default of 1.
var weights = map[string]int{
	"cheap viagra":           10,
	"online casino":          10,
	"double your bitcoin":    10,
	"crypto giveaway":        8,
	"claim your prize":       8,
	"you have been selected": 8,
	"no credit check":        5,
	"earn money fast":        5,
	"this is not spam":       5,
	"act now":                3,
	"limited time offer":     3,
	"money back guarantee":   3,
	"risk free":              2,
	"100% free":              2,
}
