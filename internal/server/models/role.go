package models

// Role is a flat access level. There is no hierarchy between roles: an
// Admin is not implicitly an Editor.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleUser   Role = "User"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// Operation names a role-restricted action.
type Operation string

const (
	OpCreateBlog  Operation = "blog.create"
	OpAssignBlog  Operation = "blog.assign"
	OpEditBlog    Operation = "blog.edit"
	OpUploadMedia Operation = "media.upload"
)

// Permissions maps every role-restricted operation to the roles allowed to
// perform it. Operations absent from the table only require authentication.
var Permissions = map[Operation][]Role{
	OpCreateBlog:  {RoleAdmin},
	OpAssignBlog:  {RoleAdmin},
	OpEditBlog:    {RoleEditor},
	OpUploadMedia: {RoleEditor},
}

// Allows reports whether role may perform op.
func (op Operation) Allows(role Role) bool {
	allowed, restricted := Permissions[op]
	if !restricted {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
