package repository

import "gorm.io/gorm"

// AutoMigrate создаёт таблицы по моделям репозиториев. Для продакшена
// отключается флагом database.autoMigrate и заменяется миграциями.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&agentModel{}, &leadModel{}, &sessionModel{})
}
