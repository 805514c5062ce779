package converter

import (
	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User, roleName string) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      roleName,
		CreatedAt: user.CreatedAt,
	}
}
