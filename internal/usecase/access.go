package usecase

import (
	"context"

	"smart-bed-allocation/internal/delivery/http/middleware"
	"smart-bed-allocation/internal/domain/entity"
)

// operatorMayManage reports whether the caller is allowed to manage the given
// hospital. Hospital operators are scoped to the single hospital bound in
// their token; admins and unauthenticated internal callers pass.
func operatorMayManage(ctx context.Context, hospitalID uint) bool {
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok || roleID != entity.RoleIDOperator {
		return true
	}
	boundID, ok := middleware.GetHospitalIDFromContext(ctx)
	return ok && boundID == hospitalID
}
