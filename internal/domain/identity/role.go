package identity

// Role represents a system role in the graduation program
type Role string

const (
	RoleCountyExecutive Role = "county_executive" // CECM and Governor
	RoleCountyAssembly  Role = "county_assembly"  // County Assembly Member
	RoleICTAdmin        Role = "ict_admin"        // ICT Administrator
	RoleMEStaff         Role = "me_staff"         // Monitoring and Evaluation Staff
	RoleFieldAssociate  Role = "field_associate"  // Field Associate / Mentor Supervisor
	RoleMentor          Role = "mentor"           // Mentor
	RoleBeneficiary     Role = "beneficiary"      // Beneficiary
)

// DefaultRole is assigned when no role is specified
const DefaultRole = RoleMentor

// AllRoles lists every valid role
var AllRoles = []Role{
	RoleCountyExecutive,
	RoleCountyAssembly,
	RoleICTAdmin,
	RoleMEStaff,
	RoleFieldAssociate,
	RoleMentor,
	RoleBeneficiary,
}

// IsValid reports whether the role is a known role
func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable role label
func (r Role) DisplayName() string {
	switch r {
	case RoleCountyExecutive:
		return "County Executive (CECM & Governor)"
	case RoleCountyAssembly:
		return "County Assembly Member"
	case RoleICTAdmin:
		return "ICT Administrator"
	case RoleMEStaff:
		return "M&E Staff"
	case RoleFieldAssociate:
		return "Field Associate/Mentor Supervisor"
	case RoleMentor:
		return "Mentor"
	case RoleBeneficiary:
		return "Beneficiary"
	default:
		return string(r)
	}
}

// Module identifies a functional area subject to role-based access control
type Module string

const (
	ModuleDashboard      Module = "dashboard"
	ModulePrograms       Module = "programs"
	ModuleHouseholds     Module = "households"
	ModuleBusinessGroups Module = "business_groups"
	ModuleSavingsGroups  Module = "savings_groups"
	ModuleSurveys        Module = "surveys"
	ModuleTraining       Module = "training"
	ModuleGrants         Module = "grants"
	ModuleReports        Module = "reports"
	ModuleSettings       Module = "settings"
)

// PermissionType is the level of access requested for a module
type PermissionType string

const (
	PermissionFull PermissionType = "full" // create, read, update, delete
	PermissionRead PermissionType = "read" // read only
	PermissionAny  PermissionType = "any"  // any level of access
)

// fullAccess maps each role to the modules it can fully manage
var fullAccess = map[Role][]Module{
	RoleCountyExecutive: {ModuleDashboard, ModuleGrants, ModuleReports},
	RoleCountyAssembly:  {ModuleDashboard, ModuleReports},
	RoleICTAdmin: {
		ModuleDashboard, ModulePrograms, ModuleHouseholds, ModuleBusinessGroups,
		ModuleSavingsGroups, ModuleSurveys, ModuleTraining, ModuleGrants,
		ModuleReports, ModuleSettings,
	},
	RoleMEStaff: {
		ModuleDashboard, ModulePrograms, ModuleHouseholds, ModuleBusinessGroups,
		ModuleSavingsGroups, ModuleSurveys, ModuleTraining, ModuleReports,
	},
	RoleFieldAssociate: {
		ModuleDashboard, ModuleHouseholds, ModuleBusinessGroups,
		ModuleSavingsGroups, ModuleSurveys, ModuleTraining, ModuleGrants,
	},
	RoleMentor: {
		ModuleDashboard, ModuleHouseholds, ModuleBusinessGroups,
		ModuleSavingsGroups, ModuleSurveys, ModuleTraining,
	},
	RoleBeneficiary: {ModuleDashboard},
}

// readAccess maps each role to its read-only modules (full access implies read)
var readAccess = map[Role][]Module{
	RoleCountyExecutive: {ModulePrograms, ModuleHouseholds, ModuleBusinessGroups, ModuleSavingsGroups, ModuleTraining},
	RoleCountyAssembly:  {ModulePrograms, ModuleHouseholds, ModuleBusinessGroups, ModuleSavingsGroups},
	RoleICTAdmin:        {},
	RoleMEStaff:         {ModuleGrants},
	RoleFieldAssociate:  {ModulePrograms, ModuleReports},
	RoleMentor:          {ModulePrograms, ModuleReports},
	RoleBeneficiary:     {ModulePrograms, ModuleHouseholds, ModuleBusinessGroups, ModuleSavingsGroups, ModuleTraining},
}

// HasModulePermission checks whether the role grants the requested level of
// access to a module
func (r Role) HasModulePermission(module Module, permission PermissionType) bool {
	full := containsModule(fullAccess[r], module)
	read := containsModule(readAccess[r], module)

	switch permission {
	case PermissionFull:
		return full
	case PermissionRead:
		return full || read
	default:
		return full || read
	}
}

// CanManage reports whether the role has full access to the module
func (r Role) CanManage(module Module) bool {
	return r.HasModulePermission(module, PermissionFull)
}

// CanView reports whether the role has at least read access to the module
func (r Role) CanView(module Module) bool {
	return r.HasModulePermission(module, PermissionRead)
}

// CanApproveGrants reports whether the role may approve grant applications
func (r Role) CanApproveGrants() bool {
	return r == RoleCountyExecutive || r == RoleICTAdmin
}

// CanReviewGrants reports whether the role may review grant applications
func (r Role) CanReviewGrants() bool {
	return r == RoleMEStaff || r == RoleFieldAssociate || r.CanApproveGrants()
}

func containsModule(modules []Module, module Module) bool {
	for _, m := range modules {
		if m == module {
			return true
		}
	}
	return false
}
