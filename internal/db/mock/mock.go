package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "pizzacost/internal/log"
	"pizzacost/models"
)

// Identifiers of the seeded records.
const (
	UnitKilogram   = "unit-kg"
	UnitGram       = "unit-g"
	UnitLitre      = "unit-l"
	UnitMillilitre = "unit-ml"
	UnitPiece      = "unit-unidad"

	TypeIngredient = "type-ingredient"
	TypePackaging  = "type-packaging"
	TypeService    = "type-service"

	CostFlour      = "cost-flour"
	CostWater      = "cost-water"
	CostSalt       = "cost-salt"
	CostYeast      = "cost-yeast"
	CostOil        = "cost-oil"
	CostMozzarella = "cost-mozzarella"
	CostSauce      = "cost-sauce"
	CostBox        = "cost-box"
	CostGas        = "cost-gas"

	DoughNapolitana = "dough-napolitana"

	RecipeTypePizza    = "recipe-type-pizza"
	RecipeTypeEmpanada = "recipe-type-empanada"

	RecipeMuzzarella = "recipe-muzzarella"
)

// DSN is the shared in-memory sqlite database used by New.
const DSN = "file:pizzacost-mock?mode=memory&cache=shared"

// New returns an in-memory sqlite database seeded with a representative pizzeria.
func New(ctx context.Context) (*gorm.DB, error) {
	return Open(ctx, DSN)
}

// Open migrates and seeds the sqlite database at dsn. Seeding is skipped when the
// database already holds units.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "dsn", dsn)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.Unit{}).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing == 0 {
		if err := seed(ctx, db); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func ptr[T any](v T) *T { return &v }

func record(id string) models.Record { return models.Record{ID: id} }

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	units := []models.Unit{
		{Record: record(UnitKilogram), Name: "Kilogramo", Abbreviation: "kg"},
		{Record: record(UnitGram), Name: "Gramo", Abbreviation: "g"},
		{Record: record(UnitLitre), Name: "Litro", Abbreviation: "l"},
		{Record: record(UnitMillilitre), Name: "Mililitro", Abbreviation: "ml"},
		{Record: record(UnitPiece), Name: "Unidad", Abbreviation: "unidad"},
	}

	costTypes := []models.CostType{
		{Record: record(TypeIngredient), Name: "Ingrediente"},
		{Record: record(TypePackaging), Name: "Packaging"},
		{Record: record(TypeService), Name: "Servicio"},
	}

	costs := []models.Cost{
		{Record: record(CostFlour), Product: "Harina 0000", Value: 1200, UnitID: UnitKilogram, TypeID: ptr(TypeIngredient)},
		{Record: record(CostWater), Product: "Agua", Value: 10, UnitID: UnitLitre, TypeID: ptr(TypeIngredient)},
		{Record: record(CostSalt), Product: "Sal fina", Value: 800, UnitID: UnitKilogram, TypeID: ptr(TypeIngredient)},
		{Record: record(CostYeast), Product: "Levadura fresca", Value: 4000, UnitID: UnitKilogram, TypeID: ptr(TypeIngredient)},
		{Record: record(CostOil), Product: "Aceite de oliva", Value: 9000, UnitID: UnitLitre, TypeID: ptr(TypeIngredient)},
		{Record: record(CostMozzarella), Product: "Muzzarella", Value: 7000, UnitID: UnitKilogram, TypeID: ptr(TypeIngredient)},
		{Record: record(CostSauce), Product: "Salsa de tomate", Value: 2500, UnitID: UnitKilogram, TypeID: ptr(TypeIngredient)},
		{Record: record(CostBox), Product: "Caja de pizza", Value: 350, UnitID: UnitPiece, TypeID: ptr(TypePackaging)},
		{Record: record(CostGas), Product: "Gas", Value: 150, UnitID: UnitPiece, TypeID: ptr(TypeService)},
	}

	margins := []models.Margin{
		{CostID: CostMozzarella, RecoveryPercentage: 50, ReinvestmentPercentage: 40, ProfitPercentage: 40},
		{CostID: CostFlour, RecoveryPercentage: 20, ReinvestmentPercentage: 10, ProfitPercentage: 20},
	}

	napolitana := models.Dough{
		Record:     record(DoughNapolitana),
		Name:       "Napolitana",
		BallWeight: ptr(250.0),
		Ingredients: []models.DoughIngredient{
			{Position: 0, CostID: CostFlour, Quantity: 1000},
			{Position: 1, CostID: CostWater, Quantity: 650},
			{Position: 2, CostID: CostSalt, Quantity: 25},
			{Position: 3, CostID: CostYeast, Quantity: 3},
			{Position: 4, CostID: CostOil, Quantity: 20},
		},
	}

	recipeTypes := []models.RecipeType{
		{Record: record(RecipeTypePizza), Name: "Pizza"},
		{Record: record(RecipeTypeEmpanada), Name: "Empanada"},
	}

	muzzarella := models.Recipe{
		Record:       record(RecipeMuzzarella),
		Name:         "Muzzarella",
		RecipeTypeID: ptr(RecipeTypePizza),
		Ingredients: []models.RecipeIngredient{
			{Position: 0, CostID: CostMozzarella, Quantity: 200},
			{Position: 1, CostID: CostSauce, Quantity: 120},
			{Position: 2, CostID: CostOil, Quantity: 10},
		},
	}

	delivery := models.Delivery{
		RecipeTypeID: RecipeTypePizza,
		Items: []models.DeliveryItem{
			{Position: 0, CostID: CostBox, Quantity: 1},
		},
	}

	consumptions := []models.Consumption{
		{Name: "Horno", CostID: CostGas, Quantity: 1.5},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []any{&units, &costTypes, &costs, &margins, &napolitana, &recipeTypes, &muzzarella, &delivery, &consumptions}
		for _, value := range steps {
			if err := tx.Create(value).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
