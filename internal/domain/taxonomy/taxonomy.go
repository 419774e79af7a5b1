// Package taxonomy assigns codex entries to the fixed category vocabulary.
//
// Classification is an ordered decision list of keyword rules evaluated
// against the case-folded entry text; the first matching rule wins. There is
// no scoring and no ties. Subcategory detection is a separate single-keyword
// waterfall that is intentionally independent of the chosen category.
package taxonomy

import "strings"

// Category is a top-level theme from the closed category vocabulary.
type Category string

// The closed category vocabulary. Every entry carries exactly one of these.
const (
	Cosmogenesis         Category = "cosmogenesis"
	Psychogenesis        Category = "psychogenesis"
	Mystagogy            Category = "mystagogy"
	ClimbingSystems      Category = "climbing-systems"
	InitiationRites      Category = "initiation-rites"
	ArchetypalStructures Category = "archetypal-structures"
	PsychicTechnologies  Category = "psychic-technologies"
	General              Category = "general"
)

// Categories returns the closed category vocabulary.
func Categories() []Category {
	return []Category{
		Cosmogenesis, Psychogenesis, Mystagogy,
		ClimbingSystems, InitiationRites, ArchetypalStructures,
		PsychicTechnologies, General,
	}
}

// IsValid reports whether c is part of the category vocabulary.
func (c Category) IsValid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// Subcategory is an optional secondary label. The zero value means absent.
type Subcategory string

// The closed subcategory vocabulary.
const (
	SubEmanation  Subcategory = "emanation"
	SubEvolution  Subcategory = "evolution"
	SubReturn     Subcategory = "return"
	SubClimbing   Subcategory = "climbing"
	SubInitiation Subcategory = "initiation"
	SubArchetypal Subcategory = "archetypal"
	SubPsychic    Subcategory = "psychic"
)

// rule is one entry of the classification decision list. A rule matches when
// every keyword in all is present, or (if all is empty) at least one keyword
// in any is present.
type rule struct {
	category Category
	all      []string
	any      []string
}

// rules in priority order. First match wins.
var rules = []rule{
	{category: Cosmogenesis, all: []string{"axis mundi", "cosmogenesis"}},
	{category: Psychogenesis, all: []string{"axis mundi", "psychogenesis"}},
	{category: Mystagogy, all: []string{"axis mundi", "mystagogy"}},
	{category: ClimbingSystems, any: []string{"luminous chapter halls", "inner climbing"}},
	{category: InitiationRites, all: []string{"initiation", "rites"}},
	{category: ArchetypalStructures, all: []string{"archetypal", "structures"}},
	{category: PsychicTechnologies, all: []string{"psychic", "technologies"}},
	{category: Psychogenesis, any: []string{"soul", "consciousness"}},
	{category: Mystagogy, any: []string{"spiritual", "ascent"}},
}

// subcategoryWaterfall in priority order. The keyword is the label itself.
var subcategoryWaterfall = []Subcategory{
	SubEmanation, SubEvolution, SubReturn,
	SubClimbing, SubInitiation, SubArchetypal, SubPsychic,
}

func (r rule) matches(folded string) bool {
	for _, kw := range r.all {
		if !strings.Contains(folded, kw) {
			return false
		}
	}
	if len(r.all) > 0 {
		return true
	}
	for _, kw := range r.any {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// Classify maps raw entry text (summary plus full text) to a category and an
// optional subcategory. It is total: every input, including the empty string,
// yields a valid category, falling back to General.
func Classify(text string) (Category, Subcategory) {
	folded := strings.ToLower(text)
	category := General
	for _, r := range rules {
		if r.matches(folded) {
			category = r.category
			break
		}
	}
	return category, classifySubcategory(folded)
}

// classifySubcategory runs the independent keyword waterfall. The result is
// not required to be consistent with the category; the two scans are kept
// separate on purpose.
func classifySubcategory(folded string) Subcategory {
	for _, s := range subcategoryWaterfall {
		if strings.Contains(folded, string(s)) {
			return s
		}
	}
	return ""
}
