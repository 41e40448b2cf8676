package recommendations

// FallbackWarning is surfaced to the user whenever the fallback set replaces a live result.
const FallbackWarning = "We couldn't get AI recommendations right now, so we're showing our standard recommendations instead."

// Fallback returns a fresh copy of the fixed six-entry recommendation set.
func Fallback() []Recommendation {
	out := make([]Recommendation, len(fallbackSet))
	for i, rec := range fallbackSet {
		rec.Alternatives = append(Alternatives(nil), rec.Alternatives...)
		out[i] = rec
	}
	return out
}

var fallbackSet = []Recommendation{
	{
		Category:     "Frontend Framework",
		Primary:      "React",
		Alternatives: Alternatives{"Vue.js", "Svelte"},
		Reasoning:    "React is recommended as your primary frontend framework based on your project requirements. It has a large community, excellent scalability for your projected growth, and works well with smaller teams. Vue.js and Svelte are good alternatives if you prefer a gentler learning curve.",
	},
	{
		Category:     "Backend Framework",
		Primary:      "Node.js/Express",
		Alternatives: Alternatives{"Django", "Ruby on Rails"},
		Reasoning:    "For your backend needs, Node.js with Express offers the best balance of development speed and scalability for your project. JavaScript across the stack will also reduce context switching for your small team.",
	},
	{
		Category:     "Database",
		Primary:      "PostgreSQL",
		Alternatives: Alternatives{"MongoDB", "Supabase"},
		Reasoning:    "PostgreSQL provides the reliability and flexibility you'll need as your project scales, while still being manageable for your team size and budget constraints. It's open-source with strong community support.",
	},
	{
		Category:     "State Management",
		Primary:      "Redux Toolkit",
		Alternatives: Alternatives{"Zustand", "Jotai"},
		Reasoning:    "Redux Toolkit will provide robust state management for your application with the potential for growth in complexity. Alternatives like Zustand offer a simpler API if your state needs remain modest.",
	},
	{
		Category:     "Styling Solution",
		Primary:      "Tailwind CSS",
		Alternatives: Alternatives{"styled-components", "Chakra UI"},
		Reasoning:    "Tailwind CSS will allow your team to build a custom UI efficiently without fighting with CSS specificity issues. It works well with component-based architectures like React.",
	},
	{
		Category:     "Deployment & Hosting",
		Primary:      "Vercel",
		Alternatives: Alternatives{"Netlify", "AWS Amplify"},
		Reasoning:    "Vercel provides the simplest deployment workflow for your React frontend with excellent performance. It fits well within your budget while allowing for future scaling.",
	},
}
