package seeders

import "checksheet-system/pkg/constants"

type permissionSeed struct {
	Name        string
	Description string
}

var permissionsData = []permissionSeed{
	{Name: constants.PermMasterDataManage, Description: "Create, update and delete master data records"},
	{Name: constants.PermChecksheetCreate, Description: "Create and edit DIR and FI checksheets"},
	{Name: constants.PermChecksheetReview, Description: "Approve, reject and request revision of checksheets"},
	{Name: constants.PermReportView, Description: "View reports and export to Excel"},
	{Name: constants.PermUserManage, Description: "Manage user accounts and role assignments"},
}

type roleSeed struct {
	Name        string
	Description string
}

var rolesData = []roleSeed{
	{Name: constants.RoleAdmin, Description: "Full access to every feature of the system"},
	{Name: constants.RoleSupervisor, Description: "Reviews checksheets and manages master data"},
	{Name: constants.RoleInspector, Description: "Fills in checksheets on the shop floor"},
}

// rolePermissionsData maps a role name to the permission names it receives.
var rolePermissionsData = map[string][]string{
	constants.RoleAdmin: {
		constants.PermMasterDataManage,
		constants.PermChecksheetCreate,
		constants.PermChecksheetReview,
		constants.PermReportView,
		constants.PermUserManage,
	},
	constants.RoleSupervisor: {
		constants.PermMasterDataManage,
		constants.PermChecksheetReview,
		constants.PermReportView,
	},
	constants.RoleInspector: {
		constants.PermChecksheetCreate,
	},
}

type codeNameSeed struct {
	Code string
	Name string
}

var sectionsData = []codeNameSeed{
	{Code: "SEC-MACH", Name: "Machining"},
	{Code: "SEC-ASSY", Name: "Assembly"},
	{Code: "SEC-QC", Name: "Quality Control"},
}

var typesData = []codeNameSeed{
	{Code: "TYPE-MASS", Name: "Mass production"},
	{Code: "TYPE-TRIAL", Name: "Trial production"},
}

var shiftsData = []codeNameSeed{
	{Code: "SHIFT-A", Name: "Day shift"},
	{Code: "SHIFT-B", Name: "Night shift"},
}

var materialsData = []codeNameSeed{
	{Code: "MAT-AL6061", Name: "Aluminium 6061"},
	{Code: "MAT-SPCC", Name: "Cold rolled steel SPCC"},
}

var rejectReasonsData = []codeNameSeed{
	{Code: "RR-SCRATCH", Name: "Surface scratch"},
	{Code: "RR-DIM", Name: "Dimension out of tolerance"},
	{Code: "RR-BURR", Name: "Burr not removed"},
}

type templateItemSeed struct {
	ItemName     string
	Nominal      string
	ToleranceMin string
	ToleranceMax string
}

// demoTemplateItems populates the demo DIR template. Tolerances are kept as
// strings so the seeder can pass them straight into NUMERIC columns.
var demoTemplateItems = []templateItemSeed{
	{ItemName: "Outer diameter", Nominal: "25.000", ToleranceMin: "-0.020", ToleranceMax: "0.020"},
	{ItemName: "Bore diameter", Nominal: "12.500", ToleranceMin: "-0.010", ToleranceMax: "0.015"},
	{ItemName: "Total length", Nominal: "80.000", ToleranceMin: "-0.050", ToleranceMax: "0.050"},
	{ItemName: "Groove depth", Nominal: "2.300", ToleranceMin: "-0.030", ToleranceMax: "0.030"},
}
