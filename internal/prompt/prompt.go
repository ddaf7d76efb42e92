// Package prompt holds the instruction sent to the vision model together with
// every image. The reply parser depends on the exact wording of the schema and
// of the fenced-block rule, so the template is versioned and never built at
// runtime.
//
// v1 is the prompt of the first web release with one line appended: the last
// line asks for a single ```json fenced block. Everything above that line keeps
// the release wording unchanged, with source indentation removed.
package prompt

import (
	_ "embed"
	"strings"
)

// Version identifies the template returned by Nutrition
const Version = "v1"

//go:embed nutrition_v1.txt
var nutritionV1 string

// Nutrition returns the nutrition analysis prompt
func Nutrition() string {
	return strings.TrimRight(nutritionV1, "\n")
}
