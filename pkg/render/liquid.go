package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/osteele/liquid"

	"github.com/grcflow/notifcomposer/pkg/variables"
)

// DefaultLiquidMaxSize bounds both the text handed to the liquid engine and
// the text it may produce.
const DefaultLiquidMaxSize = 16 * 1024

// ErrLiquidTags is returned for content holding {% %} tags. Only {{ key }}
// output expressions are interpolated; tags such as for loops could expand a
// short block without limit.
var ErrLiquidTags = errors.New("liquid tags are not supported in block content")

// outputRef matches the leading variable name of a {{ }} expression.
var outputRef = regexp.MustCompile(`\{\{-?\s*([A-Za-z_][A-Za-z0-9_]*)`)

// interpolator expands {{ key }} references in free text with the plain-text
// value of each catalog key. It runs synchronously so rendering stays a pure
// function of its inputs.
type interpolator struct {
	maxSize int
	engine  *liquid.Engine
}

func newInterpolator(maxSize int) *interpolator {
	if maxSize <= 0 {
		maxSize = DefaultLiquidMaxSize
	}
	return &interpolator{
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

func hasLiquidMarkup(content string) bool {
	return strings.Contains(content, "{{") || strings.Contains(content, "{%")
}

// Interpolate renders content against values. Text without liquid markup is
// returned untouched. References to names missing from values render as the
// fallback text, like an unresolved variable block.
func (i *interpolator) Interpolate(content string, values map[string]interface{}) (out string, err error) {
	if !hasLiquidMarkup(content) {
		return content, nil
	}
	if strings.Contains(content, "{%") {
		return "", ErrLiquidTags
	}
	if len(content) > i.maxSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), i.maxSize)
	}

	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("panic during liquid rendering: %v", r)
		}
	}()

	rendered, renderErr := i.engine.ParseAndRenderString(content, withMissingRefs(content, values))
	if renderErr != nil {
		return "", fmt.Errorf("liquid rendering failed: %w", renderErr)
	}
	if len(rendered) > i.maxSize {
		return "", fmt.Errorf("rendered size (%d bytes) exceeds maximum allowed size (%d bytes)", len(rendered), i.maxSize)
	}
	return rendered, nil
}

// withMissingRefs returns values extended with the fallback text for every
// name content references but values lacks. values itself is not modified.
func withMissingRefs(content string, values map[string]interface{}) map[string]interface{} {
	var out map[string]interface{}
	for _, m := range outputRef.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if _, ok := values[name]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]interface{}, len(values)+1)
			for k, v := range values {
				out[k] = v
			}
		}
		out[name] = variables.FallbackText
	}
	if out == nil {
		return values
	}
	return out
}
