package seeds

import (
	"gorm.io/gorm"

	learning "belajarku_backend/internals/seeds/learning"
	users "belajarku_backend/internals/seeds/users"
)

func RunAllSeeds(db *gorm.DB) {
	//* User (akun admin awal, guru & siswa contoh)
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")

	//* Learning
	learning.SeedSubjectsFromJSON(db, "internals/seeds/learning/data_subjects.json")
}
