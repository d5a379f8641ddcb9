package user

type Permission string

const (
	// Punch / time clock
	PermissionPunchCreate  Permission = "punch.create"
	PermissionPunchViewOwn Permission = "punch.view_own"
	PermissionPunchViewAll Permission = "punch.view_all"

	// Planned shifts
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Timesheets
	PermissionTimesheetViewOwn  Permission = "timesheet.view_own"
	PermissionTimesheetViewAll  Permission = "timesheet.view_all"
	PermissionTimesheetGenerate Permission = "timesheet.generate"
	PermissionTimesheetApprove  Permission = "timesheet.approve"
	PermissionTimesheetLock     Permission = "timesheet.lock"
	PermissionTimesheetExport   Permission = "timesheet.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPunchCreate,
		PermissionPunchViewOwn,
		PermissionPunchViewAll,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionTimesheetGenerate,
		PermissionTimesheetApprove,
		PermissionTimesheetLock,
		PermissionTimesheetExport,
	},
	RoleManager: {
		PermissionPunchCreate,
		PermissionPunchViewOwn,
		PermissionPunchViewAll,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionTimesheetGenerate,
		PermissionTimesheetApprove,
		PermissionTimesheetExport,
	},
	RoleStaff: {
		PermissionPunchCreate,
		PermissionPunchViewOwn,
		PermissionShiftView,
		PermissionTimesheetViewOwn,
	},
}

// HasPermission checks if a role carries a permission
func HasPermission(role Role, permission Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
