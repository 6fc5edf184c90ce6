package learning

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/learning/model"
)

type SubjectSeed struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func SeedSubjectsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file subject:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []SubjectSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		var existing model.SubjectModel
		if err := db.Where("code = ?", data.Code).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Mapel dengan kode '%s' sudah ada, dilewati.", data.Code)
			continue
		}

		newSubject := model.SubjectModel{
			ID:          uuid.New(),
			Name:        data.Name,
			Code:        data.Code,
			Description: data.Description,
		}

		if err := db.Create(&newSubject).Error; err != nil {
			log.Printf("❌ Gagal insert mapel '%s': %v", data.Name, err)
		} else {
			log.Printf("✅ Berhasil insert mapel '%s'", data.Name)
		}
	}
}
