package main

import (
	"log"
	"time"

	"genstore/internal/config"
	"genstore/internal/domain/model"
	"genstore/internal/handler"
	"genstore/internal/infra/db"
	infraRepo "genstore/internal/infra/repository"
	"genstore/internal/server"
	"genstore/internal/usecase"
	"genstore/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.Brand{},
		&model.Generator{},
		&model.Part{},
		&model.ProductImage{},
		&model.Order{},
		&model.OrderItem{},
		&model.ServiceRequest{},
		&model.UserListing{},
		&model.Setting{},
		&model.Coupon{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	generatorRepo := infraRepo.NewGeneratorGormRepository(gormDB)
	partRepo := infraRepo.NewPartGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	imageRepo := infraRepo.NewProductImageGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	serviceRepo := infraRepo.NewServiceRequestGormRepository(gormDB)
	listingRepo := infraRepo.NewUserListingGormRepository(gormDB)
	settingRepo := infraRepo.NewSettingGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher()
	resolver := usecase.NewSettingsResolver(settingRepo)
	checkoutValidator := validator.NewCheckoutValidator()

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(generatorRepo, partRepo, categoryRepo, brandRepo, imageRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo, clock)
	orderUC := usecase.NewOrderUsecase(txManager, couponRepo, resolver, checkoutValidator, idGen, clock)
	serviceUC := usecase.NewServiceUsecase(serviceRepo, idGen, clock)
	listingUC := usecase.NewListingUsecase(listingRepo, clock)
	profileUC := usecase.NewProfileUsecase(userRepo)
	addressUC := usecase.NewAddressUsecase(txManager, addressRepo)

	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo, clock)
	adminServiceUC := usecase.NewAdminServiceUsecase(serviceRepo, auditRepo, clock)
	adminListingUC := usecase.NewAdminListingUsecase(listingRepo, auditRepo, clock)
	adminCatalogUC := usecase.NewAdminCatalogUsecase(txManager, inventoryRepo, categoryRepo, brandRepo, auditRepo, clock)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, hasher, auditRepo, clock)
	adminCouponUC := usecase.NewAdminCouponUsecase(couponRepo, auditRepo, clock)
	adminSettingsUC := usecase.NewAdminSettingsUsecase(settingRepo, auditRepo, clock)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Server組み立て
	e := server.New(cfg)

	handler.NewCatalogHandler(catalogUC).RegisterRoutes(e)
	handler.NewCouponHandler(couponUC).RegisterRoutes(e)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewServiceHandler(serviceUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewListingHandler(listingUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewProfileHandler(profileUC, addressUC).RegisterRoutes(e, cfg, userRepo)

	handler.NewAdminOrderHandler(adminOrderUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminServiceHandler(adminServiceUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminListingHandler(adminListingUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminCatalogHandler(adminCatalogUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminUserHandler(adminUserUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminCouponHandler(adminCouponUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminSettingsHandler(adminSettingsUC).RegisterRoutes(e, cfg, userRepo)
	handler.NewAdminAuditHandler(auditUC).RegisterRoutes(e, cfg, userRepo)

	addr := ":8080"
	if cfg.Port != "" {
		if cfg.Port[0] != ':' {
			addr = ":" + cfg.Port
		} else {
			addr = cfg.Port
		}
	}

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
