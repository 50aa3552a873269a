package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Explanation is the panel content for a selected term.
type Explanation struct {
	Topic              string   `json:"topic"`
	Definition         string   `json:"definition"`
	Formula            string   `json:"formula,omitempty"`
	FormulaDescription string   `json:"formula_description,omitempty"`
	RelatedConcepts    []string `json:"related_concepts,omitempty"`
	Examples           []string `json:"examples,omitempty"`
	References         []string `json:"references,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	TeachingNote       string   `json:"teaching_note,omitempty"`
	Suggestions        []string `json:"suggestions,omitempty"`
}

// FallbackTopic is the topic of explanations for terms no topic matched.
const FallbackTopic = "general"

type topic struct {
	name     string
	keywords []string
	content  Explanation
}

// topics are matched in order; the first keyword contained in the selection wins.
var topics = []topic{
	{
		name:     "viscosity",
		keywords: []string{"viscosity", "viscous"},
		content: Explanation{
			Definition:         "Viscosity is a fluid's resistance to deformation at a given rate: the internal friction between adjacent layers moving at different speeds.",
			Formula:            "τ = μ (du/dy)",
			FormulaDescription: "Shear stress τ is proportional to the velocity gradient du/dy; the factor μ is the dynamic viscosity in Pa·s.",
			RelatedConcepts:    []string{"Shear stress", "Newtonian fluid", "Kinematic viscosity ν = μ/ρ"},
			Examples:           []string{"Honey flows slower than water because its viscosity is about 2000 times higher.", "Engine oil thins as it warms up."},
			References:         []string{"Çengel & Cimbala, Fluid Mechanics, ch. 2"},
			ImageURL:           "/images/assistant/viscosity.svg",
			TeachingNote:       "Ask students to compare falling-ball times in water and glycerine before introducing μ.",
		},
	},
	{
		name:     "density",
		keywords: []string{"density", "mass"},
		content: Explanation{
			Definition:         "Mass density is the mass of a substance per unit volume.",
			Formula:            "ρ = m / V",
			FormulaDescription: "ρ is the density in kg/m³, m the mass in kg and V the volume in m³.",
			RelatedConcepts:    []string{"Specific weight γ = ρg", "Specific gravity", "Pycnometer"},
			Examples:           []string{"Water at 4 °C has a density of 1000 kg/m³.", "Dry soil grains are typically 2600 to 2750 kg/m³."},
			References:         []string{"ASTM D854, Specific Gravity of Soil Solids by Water Pycnometer"},
			ImageURL:           "/images/assistant/density.svg",
			TeachingNote:       "Link the drying oven step to why the dry mass must be known before the pycnometer readings.",
		},
	},
	{
		name:     "reynolds number",
		keywords: []string{"reynolds"},
		content: Explanation{
			Definition:         "The Reynolds number is the ratio of inertial to viscous forces in a flow; it predicts whether the flow is laminar or turbulent.",
			Formula:            "Re = ρ v D / μ",
			FormulaDescription: "v is the mean velocity, D the pipe diameter, ρ the density and μ the dynamic viscosity.",
			RelatedConcepts:    []string{"Laminar flow (Re < 2300)", "Transitional flow", "Turbulent flow (Re > 4000)"},
			Examples:           []string{"Water at 1 m/s in a 10 mm pipe has Re ≈ 10 000, so the flow is turbulent."},
			References:         []string{"Osborne Reynolds, 1883, dye injection experiment"},
			ImageURL:           "/images/assistant/reynolds.svg",
			TeachingNote:       "Run the dye experiment at increasing flow rates and let students spot the transition.",
		},
	},
	{
		name:     "bernoulli",
		keywords: []string{"bernoulli"},
		content: Explanation{
			Definition:         "Bernoulli's principle states that along a streamline of a steady, incompressible, inviscid flow the total mechanical energy is constant.",
			Formula:            "p + ½ρv² + ρgz = constant",
			FormulaDescription: "Static pressure p, dynamic pressure ½ρv² and hydrostatic pressure ρgz trade off against each other.",
			RelatedConcepts:    []string{"Venturi meter", "Pitot tube", "Energy grade line"},
			Examples:           []string{"The pressure drops in the throat of a venturi tube where the velocity rises."},
			References:         []string{"Daniel Bernoulli, Hydrodynamica, 1738"},
			ImageURL:           "/images/assistant/bernoulli.svg",
			TeachingNote:       "Stress the assumptions: losses are what the minor head loss experiment measures.",
		},
	},
	{
		name:     "vapor pressure",
		keywords: []string{"vapor pressure", "vapour pressure"},
		content: Explanation{
			Definition:         "Vapor pressure is the pressure exerted by a vapor in equilibrium with its liquid at a given temperature.",
			Formula:            "ln(p₂/p₁) = −(L/R)(1/T₂ − 1/T₁)",
			FormulaDescription: "The Clausius-Clapeyron relation links vapor pressures p at absolute temperatures T through the latent heat L.",
			RelatedConcepts:    []string{"Boiling point", "Cavitation", "Saturation"},
			Examples:           []string{"Water boils at 100 °C at sea level because its vapor pressure reaches 101.3 kPa."},
			References:         []string{"Çengel & Cimbala, Fluid Mechanics, ch. 2"},
			ImageURL:           "/images/assistant/vapor-pressure.svg",
			TeachingNote:       "Connect to cavitation in pumps: local pressure below vapor pressure forms bubbles.",
		},
	},
	{
		name:     "head loss",
		keywords: []string{"head loss", "minor loss"},
		content: Explanation{
			Definition:         "Minor head loss is the energy lost as fluid passes fittings such as bends, valves and contractions.",
			Formula:            "Δp = ½ k ρ v²",
			FormulaDescription: "k is the loss coefficient of the fitting, ρ the density and v the mean velocity.",
			RelatedConcepts:    []string{"Loss coefficient k", "Equivalent length", "Darcy-Weisbach equation"},
			Examples:           []string{"A smooth 90° bend has k ≈ 0.2; a sudden contraction about 0.5."},
			References:         []string{"Crane Technical Paper 410"},
			ImageURL:           "/images/assistant/head-loss.svg",
			TeachingNote:       "Have students compare the measured pressure drop with ½kρv² at three flow rates.",
		},
	},
}

// TopicNames lists the topics in matching order.
func TopicNames() []string {
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, t.name)
	}
	return names
}

// Resolve returns the explanation of the first topic whose keyword appears in text, ignoring case.
// Unknown terms get a fallback that quotes text verbatim and suggests the closest topics.
func Resolve(text string) Explanation {
	lower := strings.ToLower(text)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				exp := t.content
				exp.Topic = t.name
				exp.RelatedConcepts = append([]string(nil), exp.RelatedConcepts...)
				exp.Examples = append([]string(nil), exp.Examples...)
				exp.References = append([]string(nil), exp.References...)
				return exp
			}
		}
	}
	return fallback(text)
}

func fallback(text string) Explanation {
	return Explanation{
		Topic:        FallbackTopic,
		Definition:   fmt.Sprintf(`No detailed explanation is available yet for "%s".`, text),
		TeachingNote: "Try selecting a single fluid-mechanics term.",
		Suggestions:  suggest(text, 3),
	}
}

const suggestionCutoff = 0.5

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// suggest returns up to n topic names that look like text or one of its words.
func suggest(text string, n int) []string {
	candidates := strings.Fields(strings.ToLower(text))
	if len(candidates) > 1 {
		candidates = append(candidates, strings.ToLower(strings.TrimSpace(text)))
	}

	type scored struct {
		name  string
		ratio float64
	}
	var matches []scored
	for _, t := range topics {
		best := 0.0
		for _, c := range candidates {
			m := difflib.NewMatcher(chars(c), chars(t.name))
			if r := m.Ratio(); r > best {
				best = r
			}
		}
		if best >= suggestionCutoff {
			matches = append(matches, scored{t.name, best})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	var out []string
	for i := 0; i < len(matches) && i < n; i++ {
		out = append(out, matches[i].name)
	}
	return out
}
