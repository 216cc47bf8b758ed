// Package topics is the static registry of editorial content areas. The
// route gate consults it to decide whether a top-level slug is reachable
// without a session.
package topics

type Visibility string

const (
	// Public topics render in full for everyone.
	Public Visibility = "public"
	// Preview topics pass through the gate unauthenticated; the page
	// itself decides between preview-only and full rendering. The gate
	// deliberately does not enforce this boundary.
	Preview Visibility = "preview"
	// Private topics never pass the gate without a session.
	Private Visibility = "private"
)

type Topic struct {
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Visibility Visibility `json:"visibility"`
}

// registry is the editorial site map. Content itself lives elsewhere;
// the gate only needs slugs and visibility.
var registry = []Topic{
	{Slug: "essays", Title: "Essays", Visibility: Public},
	{Slug: "travel-log", Title: "Travel Log", Visibility: Public},
	{Slug: "side-quests", Title: "Side Quests", Visibility: Public},
	{Slug: "field-notes", Title: "Field Notes", Visibility: Preview},
	{Slug: "reading-list", Title: "Reading List", Visibility: Preview},
	{Slug: "journal", Title: "Journal", Visibility: Private},
}

var bySlug = func() map[string]Topic {
	m := make(map[string]Topic, len(registry))
	for _, t := range registry {
		m[t.Slug] = t
	}
	return m
}()

// All returns the registry in declaration order.
func All() []Topic {
	out := make([]Topic, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a topic by slug.
func Lookup(slug string) (Topic, bool) {
	t, ok := bySlug[slug]
	return t, ok
}

// GateOpen reports whether the gate lets unauthenticated requests
// through to this topic. Preview topics are intentionally open here and
// self-enforce at the page level.
func (t Topic) GateOpen() bool {
	return t.Visibility == Public || t.Visibility == Preview
}
