// Package seed inserts the fee components the computation rules key on.
// The catalog is editable at runtime; these four codes are only created
// when missing, never rewritten.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shuaibahmad12/mirai/internal/config"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	"github.com/shuaibahmad12/mirai/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultComponents = []catalogdomain.FeeComponent{
	{Code: "TUITION", Label: "Tuition Fee", Frequency: catalogdomain.FrequencyAnnual},
	{Code: "ADMISSION", Label: "Admission Fee", Frequency: catalogdomain.FrequencyOnAdmission},
	{Code: "SECURITY", Label: "Security Deposit", Frequency: catalogdomain.FrequencyOneTime},
	{Code: "OTHER", Label: "Other Charges", Frequency: catalogdomain.FrequencyAnnual},
}

// EnsureDefaultComponents creates any of the standard components that do
// not exist yet.
func EnsureDefaultComponents(ctx context.Context, gdb *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	for _, component := range defaultComponents {
		var existing catalogdomain.FeeComponent
		err := gdb.WithContext(ctx).Where("code = ?", component.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		component.ID = genID.Generate()
		if err := gdb.WithContext(ctx).Create(&component).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				continue
			}
			return err
		}
		log.Info("seeded fee component", zap.String("code", component.Code))
	}
	return nil
}

var Module = fx.Module("seed",
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, gdb *gorm.DB, genID *snowflake.Node, log *zap.Logger) {
		if !cfg.SeedFeeComponents {
			return
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return EnsureDefaultComponents(ctx, gdb, genID, log.Named("seed"))
			},
		})
	}),
)
