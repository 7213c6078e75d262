package services

import (
	"github.com/paperlark/paperlark/pkg/internal/models"
	"gorm.io/gorm"
)

func GetUser(tx *gorm.DB, id uint) (models.User, error) {
	var user models.User
	if err := tx.
		Preload("Posts").
		Preload("Comments").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return user, err
	}
	return user, nil
}

func CountUser(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListUser(tx *gorm.DB, take int, offset int, order string) ([]models.User, error) {
	if take > 100 {
		take = 100
	}

	var users []models.User
	if err := tx.
		Preload("Posts").
		Limit(take).Offset(offset).
		Order(order).
		Find(&users).Error; err != nil {
		return users, err
	}
	return users, nil
}

type UserChanges struct {
	Email *string
	Name  *string
}

// EditUser applies a partial update; untouched fields keep their value.
func EditUser(tx *gorm.DB, user models.User, changes UserChanges) (models.User, error) {
	if changes.Email != nil {
		user.Email = *changes.Email
	}
	if changes.Name != nil {
		user.Name = *changes.Name
	}

	err := tx.Save(&user).Error
	return user, err
}

func DeleteUser(tx *gorm.DB, user models.User) error {
	return tx.Delete(&user).Error
}
