package rbac

// Default policy. Assessors run sessions and produce reports; admins can
// additionally browse the report archive.
var RolePermissions = map[string][]string{
	"assessor": {
		"session:create",
		"session:view",
		"session:reset",
		"answer:analyze",
		"report:generate",
	},
	"admin": {
		"*", // everything
	},
}
