package grid

import (
	"strings"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// RouteKind tells what a route points at
type RouteKind string

// Route kinds
const (
	RouteEdit       RouteKind = "edit"
	RouteView       RouteKind = "view"
	RouteDescriptor RouteKind = "descriptor"
)

// Route is the URL fragment selecting a grid: edit:<id>, view:<id> or an
// inline descriptor
type Route struct {
	Kind       RouteKind
	ID         string
	Descriptor string
}

// ParseRoute reads a route from a URL fragment or last path segment
func ParseRoute(s string) (Route, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if strings.HasPrefix(s, "/") {
		s = s[strings.LastIndex(s, "/")+1:]
	}
	if s == "" {
		return Route{}, errors.InvalidArgument("empty route")
	}

	for _, kind := range []RouteKind{RouteEdit, RouteView} {
		if id, ok := strings.CutPrefix(s, string(kind)+":"); ok {
			if id == "" {
				return Route{}, errors.InvalidArgumentf("%s route without grid id", kind)
			}
			return Route{Kind: kind, ID: id}, nil
		}
	}
	return Route{Kind: RouteDescriptor, Descriptor: s}, nil
}

// String formats the route as ParseRoute reads it
func (r Route) String() string {
	switch r.Kind {
	case RouteEdit, RouteView:
		return string(r.Kind) + ":" + r.ID
	default:
		return r.Descriptor
	}
}

// EditRoute points at a stored grid in edit mode
func EditRoute(id string) Route {
	return Route{Kind: RouteEdit, ID: id}
}

// ViewRoute points at a stored grid in read-only mode
func ViewRoute(id string) Route {
	return Route{Kind: RouteView, ID: id}
}

// DescriptorRoute carries g inline
func DescriptorRoute(g GameGrid) Route {
	return Route{Kind: RouteDescriptor, Descriptor: g.Descriptor()}
}
