package mapping

import (
	"math/rand"
	"net/url"
	"strings"

	"stockroom/internal/schema"
)

// keywordRule maps raw-text keywords to a target option hint. Rules
// are evaluated in slice order; keep narrower patterns ("out of
// stock", "unavailable") ahead of wider ones ("available") or they
// never fire.
type keywordRule struct {
	patterns []string
	hints    []string
}

var statusRules = []keywordRule{
	{patterns: []string{"out of stock", "unavailable", "sold out"}, hints: []string{"out"}},
	{patterns: []string{"low stock", "limited", "few left"}, hints: []string{"low"}},
	{patterns: []string{"in stock", "available"}, hints: []string{"stock"}},
}

var conditionRules = []keywordRule{
	{patterns: []string{"refurbished", "renewed"}, hints: []string{"refurbished", "used"}},
	{patterns: []string{"used", "pre-owned", "second hand"}, hints: []string{"used"}},
	{patterns: []string{"new", "sealed", "unopened"}, hints: []string{"new"}},
}

// guessOption applies the keyword rule table for a concept to raw
// text that failed normal select coercion. Only status and condition
// fields carry guess rules; every other select stays absent. When a
// rule table exists but nothing matches, the first option is the
// fallback.
func guessOption(concept, raw string, options schema.Options) (string, bool) {
	var rules []keywordRule
	switch concept {
	case "status":
		rules = statusRules
	case "condition":
		rules = conditionRules
	default:
		return "", false
	}

	lower := strings.ToLower(raw)
	for _, rule := range rules {
		for _, pattern := range rule.patterns {
			if !strings.Contains(lower, pattern) {
				continue
			}
			for _, hint := range rule.hints {
				if option, ok := optionContaining(options, hint); ok {
					return option, true
				}
			}
		}
	}
	if len(options) > 0 {
		return options[0], true
	}
	return "", false
}

func optionContaining(options schema.Options, hint string) (string, bool) {
	for _, option := range options {
		if strings.Contains(strings.ToLower(option), hint) {
			return option, true
		}
	}
	return "", false
}

// skuPrefixes gives stable SKU prefixes for known source domains.
// Unknown domains fall back to the generic prefix.
var skuPrefixes = map[string]string{
	"amazon":  "AMZ",
	"ebay":    "EBY",
	"walmart": "WMT",
	"target":  "TGT",
	"bestbuy": "BBY",
	"etsy":    "ETSY",
}

const genericSKUPrefix = "GEN"

const skuSuffixAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// synthesizeSKU builds a last-resort identifier for a required
// sku-like field the payload could not fill: a per-domain prefix plus
// a random 9-character suffix.
func synthesizeSKU(sourceURL string) string {
	prefix := genericSKUPrefix
	if u, err := url.Parse(sourceURL); err == nil {
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		for domain, p := range skuPrefixes {
			if strings.Contains(host, domain) {
				prefix = p
				break
			}
		}
	}

	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = skuSuffixAlphabet[rand.Intn(len(skuSuffixAlphabet))]
	}
	return prefix + "-" + string(suffix)
}

// requiredDefault fills a required field that stayed unresolved after
// alias resolution, coercion and option guessing. Only sku-like,
// unit-like and status-like fields have a defensible default;
// everything else is left for the user.
func requiredDefault(concept string, fieldType schema.FieldType, options schema.Options, sourceURL string) (schema.Value, bool) {
	switch concept {
	case "sku":
		return schema.TextValue(synthesizeSKU(sourceURL)), true
	case "unit":
		if fieldType != schema.FieldTypeSelect || len(options) == 0 {
			return schema.Value{}, false
		}
		if options.Contains("pieces") {
			return schema.OptionValue("pieces"), true
		}
		return schema.OptionValue(options[0]), true
	case "status":
		if fieldType != schema.FieldTypeSelect || len(options) == 0 {
			return schema.Value{}, false
		}
		if option, ok := optionContaining(options, "stock"); ok {
			return schema.OptionValue(option), true
		}
		return schema.OptionValue(options[0]), true
	}
	return schema.Value{}, false
}
