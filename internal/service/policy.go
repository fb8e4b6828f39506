// File: internal/service/policy.go
package service

import (
	"taskboard/internal/apperr"
	"taskboard/internal/model"
)

// 以下規則只依輸入判斷，資料存取留給 handler

// CheckCreateAdmin 建立管理員時的角色檢查
func CheckCreateAdmin(caller model.Role, requested model.Role) error {
	if !requested.Assignable() {
		return apperr.New(apperr.BadRequest, "role must be admin or super_admin")
	}
	if requested == model.RoleSuperAdmin && caller != model.RoleSuperAdmin {
		return apperr.New(apperr.Forbidden, "only a super_admin can create another super_admin")
	}
	return nil
}

// CheckToggleStatus 啟用/停用帳號
func CheckToggleStatus(caller *model.Identity, target *model.User, active bool) error {
	if target.Role == model.RoleSuperAdmin {
		if !active {
			return apperr.New(apperr.Forbidden, "a super_admin cannot be deactivated")
		}
		if caller.Role != model.RoleSuperAdmin {
			return apperr.New(apperr.Forbidden, "only a super_admin can change a super_admin's status")
		}
	}
	if target.ID == caller.ID {
		return apperr.New(apperr.BadRequest, "you cannot change your own status")
	}
	return nil
}

// CheckDeleteUser super_admin 永遠不可刪除
func CheckDeleteUser(caller *model.Identity, target *model.User) error {
	if target.Role == model.RoleSuperAdmin {
		return apperr.New(apperr.Forbidden, "a super_admin cannot be deleted")
	}
	if target.ID == caller.ID {
		return apperr.New(apperr.BadRequest, "you cannot delete your own account from here")
	}
	return nil
}

// CheckDeleteAccount 自行刪除帳號；super_admin 同樣不可刪除
func CheckDeleteAccount(self *model.User) error {
	if self.Role == model.RoleSuperAdmin {
		return apperr.New(apperr.Forbidden, "a super_admin cannot be deleted")
	}
	return nil
}

// CheckChangeRole 在讀取目標使用者前即可判斷的規則
func CheckChangeRole(caller *model.Identity, targetID string, role model.Role) error {
	if !role.Valid() {
		return apperr.New(apperr.BadRequest, "invalid role")
	}
	if targetID == caller.ID {
		return apperr.New(apperr.BadRequest, "you cannot change your own role")
	}
	if caller.Role != model.RoleSuperAdmin {
		return apperr.New(apperr.Forbidden, "only a super_admin can change roles")
	}
	return nil
}
