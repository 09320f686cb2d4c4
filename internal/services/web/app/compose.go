// Package app composes web modules into the root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ourhour/ourhour-web/internal/services/web/module"
	"github.com/ourhour/ourhour-web/internal/services/web/platform/httpx"
	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	AuthRequired     func(*http.Request) bool
	PublicModules    []module.Module
	ProtectedModules []module.Module
	// NotFound serves requests no module claims. Defaults to http.NotFound.
	NotFound http.Handler
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.AuthRequired == nil {
		input.AuthRequired = func(*http.Request) bool { return false }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, seen, requireAuth(input.AuthRequired)); err != nil {
			return nil, err
		}
	}

	if _, ok := seen["/"]; !ok {
		notFound := input.NotFound
		if notFound == nil {
			notFound = http.NotFoundHandler()
		}
		root.Handle("/", notFound)
	}
	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	handler http.Handler,
	pattern string,
	seen map[string]string,
) error {
	if previous, ok := seen[pattern]; ok {
		return fmt.Errorf("module %q duplicates pattern %q owned by module %q", feature.ID(), pattern, previous)
	}
	seen[pattern] = feature.ID()
	root.Handle(pattern, handler)
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, patterns, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		if isProtectedPattern(pattern) {
			return fmt.Errorf("module %q has protected pattern %q in public group", feature.ID(), pattern)
		}
		if err := mountModule(root, feature, mount.Handler, pattern, seen); err != nil {
			return err
		}
	}
	return nil
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, patterns, err := resolveMount(feature)
	if err != nil {
		return err
	}
	handler := wrap(mount.Handler)
	for _, pattern := range patterns {
		if !isProtectedPattern(pattern) {
			return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.OrgsPrefix, pattern)
		}
		if err := mountModule(root, feature, handler, pattern, seen); err != nil {
			return err
		}
	}
	return nil
}

func isProtectedPattern(pattern string) bool {
	return strings.HasPrefix(patternPath(pattern), routepath.OrgsPrefix)
}

// patternPath strips an optional method from a ServeMux pattern.
func patternPath(pattern string) string {
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		return strings.TrimSpace(pattern[i+1:])
	}
	return pattern
}

// resolveMount validates a module mount and returns every pattern it claims.
func resolveMount(feature module.Module) (module.Mount, []string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	var patterns []string
	if mount.Prefix != "" {
		if err := validatePrefix(mount.Prefix); err != nil {
			return module.Mount{}, nil, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
		}
		patterns = append(patterns, mount.Prefix)
	}
	for _, pattern := range mount.Patterns {
		if err := validatePattern(pattern); err != nil {
			return module.Mount{}, nil, fmt.Errorf("mount module %q has invalid pattern %q: %w", feature.ID(), pattern, err)
		}
		patterns = append(patterns, pattern)
	}
	if len(patterns) == 0 {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: prefix or patterns are required", feature.ID())
	}
	return mount, patterns, nil
}

func validatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func validatePattern(pattern string) error {
	if pattern == "" || strings.TrimSpace(pattern) != pattern {
		return fmt.Errorf("pattern must be non-empty without surrounding whitespace")
	}
	if !strings.HasPrefix(patternPath(pattern), "/") {
		return fmt.Errorf("pattern path must begin with /")
	}
	return nil
}

func requireAuth(authenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, routepath.LoginWithNext(r.URL.RequestURI()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
