// Package permissions maps chi route patterns to the roles allowed on them.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. An empty role list admits
// any authenticated caller.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FindPermissions returns the entry for the route pattern, or the zero
// Permission for routes that are not listed.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.buildIndex()
	}

	idx, ok := r.index[routeKey(method, path)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]int, len(r.Endpoints))

	for i, endpoint := range r.Endpoints {
		r.index[routeKey(endpoint.Method, endpoint.Path)] = i
	}
}

// Parse decodes a permissions document and rejects duplicate routes.
func Parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	permissions.buildIndex()

	if len(permissions.index) != len(permissions.Endpoints) {
		return nil, fmt.Errorf("permissions list %d endpoints but only %d are unique", len(permissions.Endpoints), len(permissions.index))
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
