package cache

import "time"

// TTLPolicy assigns each endpoint group a fixed freshness window. List-shaped
// endpoints stay short because their content churns; taxonomy, metadata and
// design documents tolerate longer windows.
type TTLPolicy struct {
	Lists    time.Duration // post lists, search, recent, related
	Post     time.Duration // single post by slug or id
	Taxonomy time.Duration // categories and tags
	Metadata time.Duration // project metadata
	Design   time.Duration // design document
}

// TTLOverrides carries optional duration strings from configuration. Empty or
// unparseable values leave the default in place.
type TTLOverrides struct {
	Lists    string
	Post     string
	Taxonomy string
	Metadata string
	Design   string
}

// DefaultTTLPolicy returns the baseline freshness windows.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Lists:    2 * time.Minute,
		Post:     5 * time.Minute,
		Taxonomy: 15 * time.Minute,
		Metadata: 15 * time.Minute,
		Design:   30 * time.Minute,
	}
}

// Apply overlays parseable override strings onto the policy.
func (p TTLPolicy) Apply(o TTLOverrides) TTLPolicy {
	p.Lists = overrideDuration(p.Lists, o.Lists)
	p.Post = overrideDuration(p.Post, o.Post)
	p.Taxonomy = overrideDuration(p.Taxonomy, o.Taxonomy)
	p.Metadata = overrideDuration(p.Metadata, o.Metadata)
	p.Design = overrideDuration(p.Design, o.Design)
	return p
}

func overrideDuration(current time.Duration, raw string) time.Duration {
	if raw == "" {
		return current
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return current
	}
	return parsed
}
