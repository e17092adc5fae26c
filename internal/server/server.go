package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shuaibahmad12/mirai/internal/academicsession"
	sessiondomain "github.com/shuaibahmad12/mirai/internal/academicsession/domain"
	"github.com/shuaibahmad12/mirai/internal/admission"
	admissiondomain "github.com/shuaibahmad12/mirai/internal/admission/domain"
	"github.com/shuaibahmad12/mirai/internal/adjustment"
	adjustmentdomain "github.com/shuaibahmad12/mirai/internal/adjustment/domain"
	"github.com/shuaibahmad12/mirai/internal/agent"
	agentdomain "github.com/shuaibahmad12/mirai/internal/agent/domain"
	"github.com/shuaibahmad12/mirai/internal/cache"
	"github.com/shuaibahmad12/mirai/internal/college"
	collegedomain "github.com/shuaibahmad12/mirai/internal/college/domain"
	"github.com/shuaibahmad12/mirai/internal/config"
	"github.com/shuaibahmad12/mirai/internal/course"
	coursedomain "github.com/shuaibahmad12/mirai/internal/course/domain"
	"github.com/shuaibahmad12/mirai/internal/feecatalog"
	catalogdomain "github.com/shuaibahmad12/mirai/internal/feecatalog/domain"
	"github.com/shuaibahmad12/mirai/internal/metrics"
	"github.com/shuaibahmad12/mirai/internal/override"
	overridedomain "github.com/shuaibahmad12/mirai/internal/override/domain"
	"github.com/shuaibahmad12/mirai/internal/receipt"
	receiptdomain "github.com/shuaibahmad12/mirai/internal/receipt/domain"
	"github.com/shuaibahmad12/mirai/internal/student"
	studentdomain "github.com/shuaibahmad12/mirai/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const catalogCacheTTL = 2 * time.Minute

var Module = fx.Module("http.server",
	cache.Module,
	metrics.Module,
	college.Module,
	course.Module,
	academicsession.Module,
	agent.Module,
	feecatalog.Module,
	admission.Module,
	student.Module,
	override.Module,
	adjustment.Module,
	receipt.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log.Named("http"), m))
	r.Use(ActorMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func registerGin(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	metrics       *metrics.Metrics
	collegeSvc    collegedomain.Service
	courseSvc     coursedomain.Service
	sessionSvc    sessiondomain.Service
	agentSvc      agentdomain.Service
	catalogSvc    catalogdomain.Service
	admissionSvc  admissiondomain.Service
	studentSvc    studentdomain.Service
	overrideSvc   overridedomain.Service
	adjustmentSvc adjustmentdomain.Service
	receiptSvc    receiptdomain.Service

	componentCache *cache.TTLCache[string, []catalogdomain.FeeComponent]
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	Registry      *prometheus.Registry
	Metrics       *metrics.Metrics
	CollegeSvc    collegedomain.Service
	CourseSvc     coursedomain.Service
	SessionSvc    sessiondomain.Service
	AgentSvc      agentdomain.Service
	CatalogSvc    catalogdomain.Service
	AdmissionSvc  admissiondomain.Service
	StudentSvc    studentdomain.Service
	OverrideSvc   overridedomain.Service
	AdjustmentSvc adjustmentdomain.Service
	ReceiptSvc    receiptdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		metrics:        p.Metrics,
		collegeSvc:     p.CollegeSvc,
		courseSvc:      p.CourseSvc,
		sessionSvc:     p.SessionSvc,
		agentSvc:       p.AgentSvc,
		catalogSvc:     p.CatalogSvc,
		admissionSvc:   p.AdmissionSvc,
		studentSvc:     p.StudentSvc,
		overrideSvc:    p.OverrideSvc,
		adjustmentSvc:  p.AdjustmentSvc,
		receiptSvc:     p.ReceiptSvc,
		componentCache: cache.NewTTLCache[string, []catalogdomain.FeeComponent](catalogCacheTTL),
	}

	p.Gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})))

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/colleges", s.CreateCollege)
	api.GET("/colleges", s.ListColleges)
	api.GET("/colleges/:id", s.GetCollege)
	api.PATCH("/colleges/:id", s.UpdateCollege)
	api.GET("/colleges/:id/courses", s.ListCourses)

	api.POST("/courses", s.CreateCourse)
	api.GET("/courses/:id", s.GetCourse)
	api.PATCH("/courses/:id", s.UpdateCourse)

	api.POST("/sessions", s.CreateSession)
	api.GET("/sessions", s.ListSessions)
	api.GET("/sessions/:id", s.GetSession)
	api.PATCH("/sessions/:id", s.UpdateSession)

	api.POST("/agents", s.CreateAgent)
	api.GET("/agents", s.ListAgents)
	api.GET("/agents/:id", s.GetAgent)

	api.POST("/fee-components", s.CreateFeeComponent)
	api.GET("/fee-components", s.ListFeeComponents)
	api.PATCH("/fee-components/:id", s.UpdateFeeComponent)
	api.DELETE("/fee-components/:id", s.DeleteFeeComponent)

	api.POST("/fee-plans", s.CreateFeePlan)
	api.GET("/fee-plans", s.ListFeePlans)
	api.GET("/fee-plans/:id", s.GetFeePlan)
	api.PATCH("/fee-plans/:id", s.UpdateFeePlan)
	api.POST("/fee-plans/:id/items", s.AddFeePlanItem)
	api.PATCH("/fee-plan-items/:id", s.UpdateFeePlanItem)
	api.DELETE("/fee-plan-items/:id", s.RemoveFeePlanItem)

	api.POST("/admissions/preview", s.PreviewAdmission)
	api.POST("/admissions/issue", s.IssueAdmission)
	api.POST("/admissions/recompute-draft", s.RecomputeAdmissionDraft)

	api.GET("/students", s.ListStudents)
	api.GET("/students/:id", s.GetStudent)
	api.PATCH("/students/:id/profile", s.PatchStudentProfile)
	api.PATCH("/students/:id/contact", s.PatchStudentContact)
	api.PATCH("/students/:id/academic", s.PatchStudentAcademic)
	api.PATCH("/students/:id/enrollment", s.PatchStudentEnrollment)
	api.PATCH("/students/:id/documents/:docId", s.PatchStudentDocument)
	api.PATCH("/students/:id/internal-refs", s.PatchStudentInternalRefs)
	api.POST("/students/:id/patch-set", s.ApplyStudentPatchSet)

	api.PUT("/students/:id/fee-overrides", s.ApplyFeeOverride)
	api.GET("/students/:id/fee-overrides", s.ListFeeOverrides)
	api.POST("/students/:id/fee-adjustments", s.CreateFeeAdjustment)
	api.POST("/students/:id/fee-adjustments/:adjId/cancel", s.CancelFeeAdjustment)
	api.GET("/students/:id/fee-adjustments", s.ListFeeAdjustments)
	api.GET("/students/:id/fee-summary", s.GetFeeSummary)
	api.POST("/students/:id/fee-receipts", s.CreateFeeReceipt)
	api.GET("/students/:id/fee-receipts", s.ListFeeReceipts)
}
