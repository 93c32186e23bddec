package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/internal/domain"
)

// SeedCatalog loads the storefront fixtures into empty collections.
// Non-empty collections are left alone so a re-run never duplicates or
// overwrites admin edits.
func (a *Application) SeedCatalog() {
	now := time.Now()

	var productCount int64
	if err := a.gormDB.Model(&domain.Product{}).Count(&productCount).Error; err != nil {
		zap.L().Error("seed: failed to count products", zap.Error(err))
		return
	}
	if productCount == 0 {
		for i := range seedProducts {
			p := seedProducts[i]
			p.NormalizeForCreate(now)
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("seed: failed to create product", zap.String("name", p.Name), zap.Error(err))
			}
		}
		zap.L().Info("seed: products loaded", zap.Int("count", len(seedProducts)))
	}

	var treatmentCount int64
	if err := a.gormDB.Model(&domain.Treatment{}).Count(&treatmentCount).Error; err != nil {
		zap.L().Error("seed: failed to count treatments", zap.Error(err))
		return
	}
	if treatmentCount == 0 {
		for i := range seedTreatments {
			t := seedTreatments[i]
			t.NormalizeForCreate(now)
			if err := a.gormDB.Create(&t).Error; err != nil {
				zap.L().Error("seed: failed to create treatment", zap.String("name", t.Name), zap.Error(err))
			}
		}
		zap.L().Info("seed: treatments loaded", zap.Int("count", len(seedTreatments)))
	}
}

var seedProducts = []domain.Product{
	{
		Name:        "Crema Solar SPF 50+",
		Description: "Protección solar de amplio espectro. Ideal para uso diario, resistente al agua, no comedogénico.",
		Price:       15000,
		Category:    "Protección Solar",
		Stock:       25,
		IsActive:    true,
	},
	{
		Name:        "Sérum Vitamina C",
		Description: "Sérum antioxidante con vitamina C pura al 20%. Ilumina, unifica el tono y previene el envejecimiento.",
		Price:       22000,
		Category:    "Sérums",
		Stock:       18,
		IsActive:    true,
	},
	{
		Name:        "Crema Hidratante Ácido Hialurónico",
		Description: "Hidratación profunda con ácido hialurónico de bajo y alto peso molecular. Para todo tipo de piel.",
		Price:       18000,
		Category:    "Hidratantes",
		Stock:       30,
		IsActive:    true,
	},
	{
		Name:        "Limpiador Facial Suave",
		Description: "Gel limpiador sin sulfatos, pH balanceado. Remueve impurezas sin resecar la piel.",
		Price:       12000,
		Category:    "Limpiadores",
		Stock:       35,
		IsActive:    true,
	},
	{
		Name:        "Exfoliante Químico AHA/BHA",
		Description: "Tónico exfoliante con ácidos glicólico y salicílico. Mejora textura, poros y luminosidad.",
		Price:       20000,
		Category:    "Exfoliantes",
		Stock:       15,
		IsActive:    true,
	},
}

var seedTreatments = []domain.Treatment{
	{
		Name:        "Valoración Médica Integral",
		Description: "Tu piel, profundamente analizada. Incluye: Rutina personalizada, Hydrafacial durante la cita y Plan personalizado.",
		Price:       40000,
		Duration:    "60 minutos",
		Category:    "Consultoría",
		IsActive:    true,
	},
	{
		Name:        "Hydrafacial",
		Description: "Limpieza profunda + hidratación avanzada + glow inmediato. Requiere valoración previa si es tu primera sesión.",
		Price:       35000,
		Duration:    "45 minutos",
		Category:    "Tratamientos Faciales",
		IsActive:    true,
	},
	{
		Name:        "Radiofrecuencia Facial (5 Sesiones)",
		Description: "Reafirma, mejora textura y estimula colágeno para una piel más firme y luminosa.",
		Price:       125000,
		Duration:    "5 sesiones",
		Category:    "Paquetes",
		IsActive:    true,
	},
	{
		Name:        "Peelings Químicos",
		Description: "Protocolos médicos para: manchas, acné, rosácea y envejecimiento. Mejora textura, tono y luminosidad.",
		Price:       40000,
		Duration:    "30 minutos",
		Category:    "Tratamientos Faciales",
		IsActive:    true,
	},
}
