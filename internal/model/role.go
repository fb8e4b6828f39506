// File: internal/model/role.go
package model

import "fmt"

// Role 使用者權限等級，僅允許下列三種值
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Roles 依權限由低至高排列
var Roles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

// ParseRole 將字串轉為 Role，不合法時回傳錯誤
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

// Valid 是否為已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// AtLeastAdmin admin 與 super_admin 皆可通過管理員守衛
func (r Role) AtLeastAdmin() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

// Assignable 可透過建立管理員或變更角色指定的角色
func (r Role) Assignable() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	case RoleUser:
		return false
	}
	return false
}

func (r Role) String() string { return string(r) }
