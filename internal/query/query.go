// Package query generates search-query variants from a research topic.
package query

import (
	"fmt"
	"strings"
)

// VariantCount is the fixed number of query variants produced per topic.
const VariantCount = 5

// Variants expands a topic into its ordered search-query variants.
// The topic is lower-cased but never validated: an empty topic yields
// variants with empty segments, which discovery tolerates.
func Variants(topic string) []string {
	base := strings.ToLower(topic)

	return []string{
		base,
		fmt.Sprintf("what is %s", base),
		fmt.Sprintf("%s guide", base),
		fmt.Sprintf("best practices %s", base),
		fmt.Sprintf("%s tutorial", base),
	}
}
