package variables

import (
	"net/url"
	"strings"
)

// FallbackText is displayed for keys that cannot be resolved.
const FallbackText = "—"

// FragmentKind tells the renderer which visual shape a resolved value takes.
type FragmentKind string

const (
	FragmentText        FragmentKind = "text"
	FragmentEntityBadge FragmentKind = "entityBadge"
	FragmentUserChip    FragmentKind = "userChip"
	FragmentTag         FragmentKind = "tag"
	FragmentStatusChip  FragmentKind = "statusChip"
	FragmentLink        FragmentKind = "link"
	FragmentFallback    FragmentKind = "fallback"
)

// Fragment is the renderable representation of one variable key.
// Only the fields meaningful for Kind are set.
type Fragment struct {
	Kind       FragmentKind `json:"kind"`
	Key        string       `json:"key"`
	Text       string       `json:"text"`
	Icon       string       `json:"icon,omitempty"`
	Initials   string       `json:"initials,omitempty"`
	Level      string       `json:"level,omitempty"`
	ColorClass string       `json:"colorClass,omitempty"`
	Href       string       `json:"href,omitempty"`
}

// IsFallback reports whether the fragment is the em dash placeholder.
func (f Fragment) IsFallback() bool {
	return f.Kind == FragmentFallback
}

// Resolver maps variable keys to fragments. Implementations must be total:
// unknown keys resolve to a fallback fragment.
type Resolver interface {
	Resolve(key string) Fragment
	// Values returns the plain-text value of every catalog key, used for
	// inline interpolation in text blocks.
	Values() map[string]interface{}
}

type resolveFunc func(ctx Context, key string) Fragment

// resolvers must hold one entry per catalog key.
var resolvers = map[string]resolveFunc{
	KeyName:        resolveText(func(c Context) string { return c.Name }),
	KeyDescription: resolveText(func(c Context) string { return c.Description }),
	KeyDate:        resolveText(func(c Context) string { return c.Date }),
	KeyResponsible: resolveUser(func(c Context) UserRef { return c.Responsible }),
	KeyCreator:     resolveUser(func(c Context) UserRef { return c.Creator }),
	KeyEntity: func(c Context, key string) Fragment {
		if c.Entity.Label == "" {
			return Fallback(key)
		}
		return Fragment{Kind: FragmentEntityBadge, Key: key, Text: c.Entity.Label, Icon: c.Entity.Icon}
	},
	KeySeverity: func(c Context, key string) Fragment {
		if c.Severity.Label == "" {
			return Fallback(key)
		}
		return Fragment{Kind: FragmentTag, Key: key, Text: c.Severity.Label, Level: c.Severity.Level}
	},
	KeyStatus: func(c Context, key string) Fragment {
		if c.Status.Label == "" {
			return Fallback(key)
		}
		return Fragment{Kind: FragmentStatusChip, Key: key, Text: c.Status.Label, ColorClass: c.Status.ColorClass}
	},
	KeyLink: func(c Context, key string) Fragment {
		if !IsSafeLink(c.Link) {
			return Fallback(key)
		}
		return Fragment{Kind: FragmentLink, Key: key, Text: c.Link, Href: c.Link}
	},
}

func resolveText(get func(Context) string) resolveFunc {
	return func(c Context, key string) Fragment {
		v := get(c)
		if v == "" {
			return Fallback(key)
		}
		return Fragment{Kind: FragmentText, Key: key, Text: v}
	}
}

func resolveUser(get func(Context) UserRef) resolveFunc {
	return func(c Context, key string) Fragment {
		u := get(c)
		if u.Name == "" {
			return Fallback(key)
		}
		initials := u.Initials
		if initials == "" {
			initials = Initials(u.Name)
		}
		return Fragment{Kind: FragmentUserChip, Key: key, Text: u.Name, Initials: initials}
	}
}

// Fallback builds the em dash fragment for key.
func Fallback(key string) Fragment {
	return Fragment{Kind: FragmentFallback, Key: key, Text: FallbackText}
}

// ContextResolver resolves keys against a fixed Context value.
type ContextResolver struct {
	ctx Context
}

// NewResolver returns a resolver over a copy of ctx.
func NewResolver(ctx Context) *ContextResolver {
	return &ContextResolver{ctx: ctx}
}

// Resolve never fails; unknown keys yield Fallback.
func (r *ContextResolver) Resolve(key string) Fragment {
	fn, ok := resolvers[key]
	if !ok {
		return Fallback(key)
	}
	return fn(r.ctx, key)
}

// Values maps every catalog key to its display text. Unresolved keys map to
// FallbackText so inline references read the same as variable blocks.
func (r *ContextResolver) Values() map[string]interface{} {
	values := make(map[string]interface{}, len(catalog))
	for _, e := range catalog {
		values[e.Key] = r.Resolve(e.Key).Text
	}
	return values
}

// IsSafeLink reports whether raw is an absolute http, https or mailto URL,
// the only schemes allowed into an href.
func IsSafeLink(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return u.Opaque != ""
	default:
		return false
	}
}

// Initials derives up to two uppercase initials from a full name.
func Initials(name string) string {
	var out []rune
	inWord := false
	for _, r := range name {
		if r == ' ' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			out = append(out, r)
			inWord = true
			if len(out) == 2 {
				break
			}
		}
	}
	return strings.ToUpper(string(out))
}
