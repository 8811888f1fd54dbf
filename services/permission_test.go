package services

import (
	"testing"

	"freight-app/models"

	"github.com/stretchr/testify/assert"
)

func menuWithPerm(name string, perms []string, children ...models.Menu) models.Menu {
	menu := models.Menu{Name: name, Children: children}
	for _, p := range perms {
		menu.Permissions = append(menu.Permissions, models.Permission{Name: p})
	}
	return menu
}

func TestHasPermissionWalksTree(t *testing.T) {
	tree := []models.Menu{
		menuWithPerm("Order Entry", []string{"order_entry"},
			menuWithPerm("Batch Orders", []string{"order_submit"}),
		),
		menuWithPerm("Master Data", nil,
			menuWithPerm("Tariffs", []string{"master_edit"}),
		),
	}

	assert.True(t, HasPermission(tree, "order_entry"))
	assert.True(t, HasPermission(tree, "order_submit"))
	assert.True(t, HasPermission(tree, "master_edit"))
	assert.False(t, HasPermission(tree, "policy_admin"))
	assert.False(t, HasPermission(nil, "order_entry"))
}

func TestPermissionSetFlattensRoles(t *testing.T) {
	roles := []models.Role{
		{Name: "operator", Permissions: []models.Permission{{Name: "order_entry"}, {Name: "history_view"}}},
		{Name: "admin", Permissions: []models.Permission{{Name: "order_entry"}, {Name: "policy_admin"}}},
	}

	set := PermissionSet(roles)

	assert.True(t, set["order_entry"])
	assert.True(t, set["history_view"])
	assert.True(t, set["policy_admin"])
	assert.False(t, set["master_edit"])
}
