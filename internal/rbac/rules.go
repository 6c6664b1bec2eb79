package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"teacher": {
		"bank:view",
		"quiz:create",
		"quiz:view-own",
		"quiz:delete-own",
		"quiz:export",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
