package bootstrap

import (
	"log"

	"alumnihub/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.BatchGroup{},
		&model.User{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Connection{},
		&model.Notification{},
		&model.Message{},
	)
}

func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@alumnihub.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Name:         "Administrator",
		Email:        "admin@alumnihub.local",
		PasswordHash: string(hashedPasswordBytes),
		Role:         model.RoleAdmin,
		Status:       model.StatusApproved,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@alumnihub.local")
	log.Println("   Password: admin123")

	return nil
}

// SeedDemoData populates a small set of approved members, a pending
// applicant, and a handful of posts. Intended for development only.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "sarah@example.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	passwordHash := string(hashedPasswordBytes)

	batch2015 := model.BatchGroup{Year: 2015}
	if err := db.Where("year = ?", batch2015.Year).FirstOrCreate(&batch2015).Error; err != nil {
		return err
	}
	batch2018 := model.BatchGroup{Year: 2018}
	if err := db.Where("year = ?", batch2018.Year).FirstOrCreate(&batch2018).Error; err != nil {
		return err
	}

	sarah := model.User{
		Name:         "Sarah Wijaya",
		Email:        "sarah@example.com",
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Status:       model.StatusApproved,
		PassingYear:  2015,
		BatchGroupID: &batch2015.ID,
		Occupation:   stringPtr("Product Manager"),
		Location:     stringPtr("Jakarta"),
	}
	if err := db.Create(&sarah).Error; err != nil {
		return err
	}

	budi := model.User{
		Name:         "Budi Santoso",
		Email:        "budi@example.com",
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Status:       model.StatusApproved,
		PassingYear:  2015,
		BatchGroupID: &batch2015.ID,
		Occupation:   stringPtr("Software Engineer"),
	}
	if err := db.Create(&budi).Error; err != nil {
		return err
	}

	rina := model.User{
		Name:         "Rina Hartono",
		Email:        "rina@example.com",
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Status:       model.StatusApproved,
		PassingYear:  2018,
		BatchGroupID: &batch2018.ID,
		Occupation:   stringPtr("Data Analyst"),
	}
	if err := db.Create(&rina).Error; err != nil {
		return err
	}

	pending := model.User{
		Name:         "Andi Pratama",
		Email:        "andi@example.com",
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		Status:       model.StatusPending,
		PassingYear:  2018,
	}
	if err := db.Create(&pending).Error; err != nil {
		return err
	}

	publicPost := model.Post{
		UserID:     sarah.ID,
		Content:    "Excited to reconnect with everyone here! Who else is based in Jakarta?",
		Visibility: model.VisibilityPublic,
	}
	if err := db.Create(&publicPost).Error; err != nil {
		return err
	}

	batchPost := model.Post{
		UserID:       budi.ID,
		Content:      "Class of 2015 — should we plan a reunion this year?",
		Visibility:   model.VisibilityBatch,
		BatchGroupID: &batch2015.ID,
	}
	if err := db.Create(&batchPost).Error; err != nil {
		return err
	}

	if err := db.Create(&model.Like{UserID: budi.ID, PostID: publicPost.ID}).Error; err != nil {
		return err
	}
	if err := db.Create(&model.Like{UserID: rina.ID, PostID: publicPost.ID}).Error; err != nil {
		return err
	}

	comment := model.Comment{
		UserID: rina.ID,
		PostID: publicPost.ID,
		Text:   "Welcome back Sarah! I'm in Jakarta too.",
	}
	if err := db.Create(&comment).Error; err != nil {
		return err
	}

	log.Println("✅ Demo data seeded successfully")
	return nil
}

func stringPtr(s string) *string {
	return &s
}
