package main

import (
	"fmt"
	"log"
	"time"

	"github.com/lats-hub/repairgo/internal/config"
	"github.com/lats-hub/repairgo/internal/database"
	"github.com/lats-hub/repairgo/internal/lifecycle"
	"github.com/lats-hub/repairgo/internal/models"
	"github.com/lats-hub/repairgo/internal/utils"
)

func main() {
	fmt.Println("🌱 RepairGo Demo Data Seeder")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.Customer{},
		&models.PointsTransaction{},
		&models.Device{},
		&models.StatusTransition{},
		&models.WorkSession{},
		&models.Payment{},
		&models.FinanceAccount{},
		&models.Attachment{},
		&models.Rating{},
		&models.Remark{},
		&models.AuditLog{},
		&models.SMSLog{},
		&models.SMSOutbox{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	if customerCount > 0 {
		fmt.Printf("⚠️  Database already has %d customers. Clear it first? (y/N): ", customerCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE status_transitions CASCADE")
		db.Exec("TRUNCATE TABLE work_sessions CASCADE")
		db.Exec("TRUNCATE TABLE payments CASCADE")
		db.Exec("TRUNCATE TABLE remarks CASCADE")
		db.Exec("TRUNCATE TABLE ratings CASCADE")
		db.Exec("TRUNCATE TABLE points_transactions CASCADE")
		db.Exec("TRUNCATE TABLE devices CASCADE")
		db.Exec("TRUNCATE TABLE customers CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("🔧 Creating demo data...")
	fmt.Println()

	// 1. Create staff
	fmt.Println("👤 Creating staff users...")
	password, _ := utils.HashPassword("changeme123")
	staff := []models.UserAuth{
		{Username: "admin", Password: password, Email: "admin@latshub.example", Name: "Shop Admin", Role: models.RoleAdmin},
		{Username: "diana", Password: password, Email: "diana@latshub.example", Name: "Diana K.", Role: models.RoleTechnician},
		{Username: "felix", Password: password, Email: "felix@latshub.example", Name: "Felix M.", Role: models.RoleTechnician},
		{Username: "care", Password: password, Email: "care@latshub.example", Name: "Front Desk", Role: models.RoleCustomerCare},
	}
	for i := range staff {
		if err := db.Create(&staff[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create user %s: %v", staff[i].Username, err)
		} else {
			fmt.Printf("   ✓ Created user: %s (%s)\n", staff[i].Username, staff[i].Role)
		}
	}
	fmt.Printf("✅ Created %d staff users\n\n", len(staff))

	technician := staff[1]

	// 2. Create finance account
	cash := models.FinanceAccount{Name: "Cash", Currency: "TZS"}
	db.Where(models.FinanceAccount{Name: "Cash"}).FirstOrCreate(&cash)

	// 3. Create customers
	fmt.Println("🧑 Creating customers...")
	customers := []models.Customer{
		{Name: "Amina Hassan", Phone: "+255712000001", Email: "amina@example.com", LoyaltyPoints: 40},
		{Name: "John Mwangi", Phone: "+255712000002"},
		{Name: "Grace Ochieng", Phone: "+255712000003", Email: "grace@example.com"},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create customer %s: %v", customers[i].Name, err)
		} else {
			fmt.Printf("   ✓ Created customer: %s\n", customers[i].Name)
		}
	}
	fmt.Printf("✅ Created %d customers\n\n", len(customers))

	// 4. Create devices mid-lifecycle, with their transition history
	fmt.Println("📱 Creating devices...")
	now := time.Now()
	returnDate := now.Add(72 * time.Hour)
	devices := []struct {
		device models.Device
		path   []lifecycle.DeviceStatus
	}{
		{
			device: models.Device{
				CustomerID:         customers[0].ID,
				Brand:              "Samsung",
				Model:              "Galaxy S21",
				SerialNumber:       "352099001761481",
				IssueDescription:   "Screen cracked after drop, touch still partially works",
				AssignedTo:         technician.ID,
				RepairCost:         180000,
				DepositAmount:      50000,
				ExpectedReturnDate: &returnDate,
			},
			path: []lifecycle.DeviceStatus{
				lifecycle.StatusAssigned,
				lifecycle.StatusDiagnosisStarted,
				lifecycle.StatusInRepair,
			},
		},
		{
			device: models.Device{
				CustomerID:         customers[1].ID,
				Brand:              "Apple",
				Model:              "iPhone 13",
				SerialNumber:       "G9566RL4YC",
				IssueDescription:   "Battery drains within two hours of normal use",
				AssignedTo:         technician.ID,
				RepairCost:         220000,
				DiagnosisRequired:  true,
				ExpectedReturnDate: &returnDate,
			},
			path: []lifecycle.DeviceStatus{
				lifecycle.StatusAssigned,
				lifecycle.StatusDiagnosisStarted,
				lifecycle.StatusAwaitingParts,
			},
		},
		{
			device: models.Device{
				CustomerID:       customers[2].ID,
				Brand:            "Xiaomi",
				Model:            "Redmi Note 12",
				SerialNumber:     "867530912345678",
				IssueDescription: "Phone does not charge, customer already replaced the cable",
				AssignedTo:       technician.ID,
				RepairCost:       95000,
			},
			path: []lifecycle.DeviceStatus{
				lifecycle.StatusAssigned,
				lifecycle.StatusDiagnosisStarted,
				lifecycle.StatusInRepair,
				lifecycle.StatusTesting,
				lifecycle.StatusRepairComplete,
				lifecycle.StatusCustomerCare,
				lifecycle.StatusDone,
			},
		},
	}

	for i := range devices {
		d := &devices[i].device
		path := devices[i].path
		d.Status = path[len(path)-1]
		if err := db.Create(d).Error; err != nil {
			log.Printf("⚠️  Failed to create device %s: %v", d.Model, err)
			continue
		}

		// Backdated transitions, spaced a few hours apart
		var prev *lifecycle.DeviceStatus
		at := now.Add(-time.Duration(len(path)*5) * time.Hour)
		for _, status := range path {
			s := status
			transition := models.StatusTransition{
				DeviceID:    d.ID,
				FromStatus:  prev,
				ToStatus:    s,
				PerformedBy: technician.ID,
				CreatedAt:   at,
			}
			if err := db.Create(&transition).Error; err != nil {
				log.Printf("⚠️  Failed to create transition for %s: %v", d.Model, err)
			}
			prev = &s
			at = at.Add(5 * time.Hour)
		}
		fmt.Printf("   ✓ Created device: %s %s (%s)\n", d.Brand, d.Model, d.Status)
	}
	fmt.Printf("✅ Created %d devices\n\n", len(devices))

	// 5. Payments and remarks on the first device
	deposit := models.Payment{
		DeviceID:         &devices[0].device.ID,
		CustomerID:       customers[0].ID,
		FinanceAccountID: cash.ID,
		Amount:           50000,
		Type:             "deposit",
		Method:           "cash",
		CreatedBy:        staff[3].ID,
	}
	if err := db.Create(&deposit).Error; err != nil {
		log.Printf("⚠️  Failed to create payment: %v", err)
	}
	db.Model(&cash).Update("balance", cash.Balance+deposit.Amount)

	remark := models.Remark{
		DeviceID:  devices[0].device.ID,
		Text:      "Display assembly ordered, frame is intact",
		CreatedBy: technician.ID,
	}
	if err := db.Create(&remark).Error; err != nil {
		log.Printf("⚠️  Failed to create remark: %v", err)
	}

	fmt.Println()
	fmt.Println("✅ Demo data ready. Log in with admin / changeme123")
}
