package domain

// Permission is an atomic capability identifier granted to a role. Grants are
// evaluated by set membership, not hierarchy: edit-any-article and
// edit-own-article are independent permissions and an actor needs the one
// matching the scope it is attempting.
type Permission string

const (
	PermCreateArticle    Permission = "create-article"
	PermEditAnyArticle   Permission = "edit-any-article"
	PermEditOwnArticle   Permission = "edit-own-article"
	PermDeleteAnyArticle Permission = "delete-any-article"
	PermDeleteOwnArticle Permission = "delete-own-article"
	PermCreateComment    Permission = "create-comment"
	PermEditAnyComment   Permission = "edit-any-comment"
	PermEditOwnComment   Permission = "edit-own-comment"
	PermDeleteAnyComment Permission = "delete-any-comment"
	PermDeleteOwnComment Permission = "delete-own-comment"
	PermManageUsers      Permission = "manage-users"
	PermManageRoles      Permission = "manage-roles"
	PermManageTags       Permission = "manage-tags"
	PermManageSettings   Permission = "manage-settings"
)

// AllPermissions lists every known permission, in declaration order.
func AllPermissions() []Permission {
	return []Permission{
		PermCreateArticle,
		PermEditAnyArticle,
		PermEditOwnArticle,
		PermDeleteAnyArticle,
		PermDeleteOwnArticle,
		PermCreateComment,
		PermEditAnyComment,
		PermEditOwnComment,
		PermDeleteAnyComment,
		PermDeleteOwnComment,
		PermManageUsers,
		PermManageRoles,
		PermManageTags,
		PermManageSettings,
	}
}

// Built-in role names. RoleAdmin and RoleReader are reserved: the registry
// refuses to remove them. RoleReader doubles as both the registration default
// and the fallback target when another role is deleted.
const (
	RoleAdmin  = "admin"
	RoleWriter = "writer"
	RoleReader = "reader"
)
