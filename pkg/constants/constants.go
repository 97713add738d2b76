package constants

// Permission names seeded into the permissions table and checked by the
// route middleware.
const (
	PermMasterDataManage = "master_data:manage"
	PermChecksheetCreate = "checksheet:create"
	PermChecksheetReview = "checksheet:review"
	PermReportView       = "report:view"
	PermUserManage       = "user:manage"
)

// Role names seeded into the roles table.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleInspector  = "inspector"
)
