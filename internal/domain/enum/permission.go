package enum

// Permission names granted through roles
const (
	PermissionReceiveGoods    = "receive-goods"
	PermissionUpdatePrices    = "update-prices"
	PermissionManageProducts  = "manage-products"
	PermissionManageSuppliers = "manage-suppliers"
	PermissionViewReceipts    = "view-receipts"
	PermissionManageDrafts    = "manage-drafts"
)

// Built-in role names
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleClerk      = "clerk"
)

// AllPermissions lists every permission known to the service
func AllPermissions() []string {
	return []string{
		PermissionReceiveGoods,
		PermissionUpdatePrices,
		PermissionManageProducts,
		PermissionManageSuppliers,
		PermissionViewReceipts,
		PermissionManageDrafts,
	}
}
