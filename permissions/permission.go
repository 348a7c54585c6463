package permissions

import (
	_ "embed"
	"encoding/json"
	"path"
	"slices"
	"strings"

	"pmsconsole/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission is one entry of the route table. Path is a chi route pattern or a
// glob; Method "*" matches every method.
type Permission struct {
	Roles  []string `json:"roles"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the first entry matching the route. Exact patterns are
// tried before globs. Routes without an entry need a session and no particular role.
func (r *PermissionData) FindPermissions(route, method string) Permission {
	route = normalize(route)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalize(rp.Path) == route && methodMatches(rp.Method, method)
	})

	if idx == -1 {
		idx = slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
			matched, err := path.Match(rp.Path, route)

			return err == nil && matched && methodMatches(rp.Method, method)
		})
	}

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Allows reports whether role may use the route. An entry without roles admits everyone signed in.
func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

func methodMatches(want, got string) bool {
	return want == constant.Asterix || strings.EqualFold(want, got)
}

func normalize(route string) string {
	if route != "/" {
		route = strings.TrimSuffix(route, "/")
	}

	return route
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
