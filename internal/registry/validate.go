package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/nitpickgo/internal/ctxlog"
)

const (
	// codeRange is the span of codes a checker may emit above its base.
	codeRange = 10
	// firstCheckerCode is the lowest base a checker may use; the codes
	// below belong to the core.
	firstCheckerCode = 200
)

// ValidateRegistry checks that every checker has a name and that error code
// ranges neither overlap each other nor the core codes.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	type owner struct {
		name string
		base int
	}
	var owners []owner

	for _, c := range r.files {
		desc := c.Descriptor()
		if desc.Name == "" {
			errs = append(errs, fmt.Sprintf("checker for '%s' has no name", desc.FileName))
		}
		if desc.ErrorBase == 0 {
			logger.Debug("Checker only reports existence.", "checker", desc.Name)
			continue
		}
		owners = append(owners, owner{name: desc.Name, base: desc.ErrorBase})
	}
	for _, h := range r.handlers {
		if len(h.tags) == 0 {
			errs = append(errs, fmt.Sprintf("handler '%s' declares no tags", h.name))
		}
		owners = append(owners, owner{name: h.name, base: h.base})
	}

	for i, a := range owners {
		if a.base < firstCheckerCode {
			errs = append(errs, fmt.Sprintf("checker '%s': error base %d overlaps the core codes", a.name, a.base))
		}
		for _, b := range owners[i+1:] {
			if a.base < b.base+codeRange && b.base < a.base+codeRange {
				errs = append(errs, fmt.Sprintf("checkers '%s' and '%s' have overlapping error codes (%d, %d)", a.name, b.name, a.base, b.base))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
