package services

import "freight-app/models"

// HasPermission walks an explicitly-passed menu tree and reports whether any
// node carries the named permission. No ambient state: callers load the tree
// once per request and pass it in.
func HasPermission(tree []models.Menu, permission string) bool {
	for _, node := range tree {
		for _, perm := range node.Permissions {
			if perm.Name == permission {
				return true
			}
		}
		if HasPermission(node.Children, permission) {
			return true
		}
	}
	return false
}

// PermissionSet flattens a user's roles into a lookup set.
func PermissionSet(roles []models.Role) map[string]bool {
	set := make(map[string]bool)
	for _, role := range roles {
		for _, perm := range role.Permissions {
			set[perm.Name] = true
		}
	}
	return set
}
