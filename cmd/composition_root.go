package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	httpadapter "devis/internal/adapters/in/http"
	"devis/internal/adapters/out/pdfrenderer"
	"devis/internal/adapters/out/postgres"
	"devis/internal/adapters/out/postgres/cartrepo"
	"devis/internal/adapters/out/postgres/catalogrepo"
	"devis/internal/adapters/out/postgres/identityrepo"
	"devis/internal/adapters/out/redisnotify"
	"devis/internal/adapters/out/s3store"
	"devis/internal/core/application/documents"
	"devis/internal/core/application/usecases/commands"
	"devis/internal/core/application/usecases/queries"
	"devis/internal/core/ports"
	"devis/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the infrastructure clients and builds every use case from them.
type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	redisClient redis.UniversalClient
	objectStore ports.ObjectStore
	logger      *slog.Logger
	clock       func() time.Time

	uowFactory commands.UoWFactory
	directory  *identityrepo.GormDirectory
	catalog    *catalogrepo.GormProductCatalog
	notifier   *redisnotify.Notifier
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	redisClient redis.UniversalClient,
	objectStore ports.ObjectStore,
	logger *slog.Logger,
) *CompositionRoot {
	clock := func() time.Time { return time.Now().UTC() }
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	return &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		redisClient: redisClient,
		objectStore: objectStore,
		logger:      logger,
		clock:       clock,
		uowFactory: FuncUoWFactory(func() commands.UoW {
			return uowFactory.Create()
		}),
		directory: identityrepo.NewGormDirectory(gormDB),
		catalog:   catalogrepo.NewGormProductCatalog(gormDB),
		notifier:  redisnotify.NewNotifier(redisClient, cfg.NotificationChannel, clock, logger),
	}
}

func (c *CompositionRoot) CreateDocumentPublisher() *documents.Publisher {
	renderer := pdfrenderer.NewClient(c.cfg.RendererURL, c.cfg.RendererTemplate, c.cfg.RendererTimeout)
	emitter := ports.Identity{
		Name:    c.cfg.EmitterName,
		Email:   c.cfg.EmitterEmail,
		Phone:   c.cfg.EmitterPhone,
		Company: c.cfg.EmitterCompany,
	}
	return documents.NewPublisher(renderer, c.objectStore, c.directory, c.directory, emitter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateQuoteRequestCommandHandler() commands.CreateQuoteRequestCommandHandler {
	return commands.NewCreateQuoteRequestCommandHandler(
		c.uowFactory, c.catalog, cartrepo.NewGormCart(c.gormDB), c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateAdminUpdateQuoteRequestCommandHandler() commands.AdminUpdateQuoteRequestCommandHandler {
	return commands.NewAdminUpdateQuoteRequestCommandHandler(c.uowFactory, c.catalog, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGenerateAndSendQuoteCommandHandler(
	publisher commands.DocumentPublisher,
) commands.GenerateAndSendQuoteCommandHandler {
	return commands.NewGenerateAndSendQuoteCommandHandler(
		c.uowFactory, c.catalog, publisher, c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreatePreviewQuoteCommandHandler(publisher commands.DocumentPublisher) commands.PreviewQuoteCommandHandler {
	return commands.NewPreviewQuoteCommandHandler(c.uowFactory, publisher, c.logger)
}

func (c *CompositionRoot) CreateValidateQuoteCommandHandler() commands.ValidateQuoteCommandHandler {
	return commands.NewValidateQuoteCommandHandler(c.uowFactory, c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.uowFactory, c.directory, c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.uowFactory, c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateMarkClientAbsentCommandHandler() commands.MarkClientAbsentCommandHandler {
	return commands.NewMarkClientAbsentCommandHandler(c.uowFactory, c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateResumeSentQuotesCommandHandler() commands.ResumeSentQuotesCommandHandler {
	return commands.NewResumeSentQuotesCommandHandler(c.uowFactory, c.notifier, c.cfg.Policy(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetQuoteRequestQueryHandler() queries.GetQuoteRequestQueryHandler {
	return queries.NewGetQuoteRequestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCourierDeliveriesQueryHandler() queries.ListCourierDeliveriesQueryHandler {
	return queries.NewListCourierDeliveriesQueryHandler(c.gormDB)
}

// CreateUseCases wires the handlers served over HTTP.
func (c *CompositionRoot) CreateUseCases() httpadapter.UseCases {
	publisher := c.CreateDocumentPublisher()
	return httpadapter.UseCases{
		CreateQuoteRequest:    c.CreateCreateQuoteRequestCommandHandler(),
		UpdateQuoteRequest:    c.CreateAdminUpdateQuoteRequestCommandHandler(),
		SendQuote:             c.CreateGenerateAndSendQuoteCommandHandler(publisher),
		PreviewQuote:          c.CreatePreviewQuoteCommandHandler(publisher),
		ValidateQuote:         c.CreateValidateQuoteCommandHandler(),
		AssignCourier:         c.CreateAssignCourierCommandHandler(),
		ConfirmDelivery:       c.CreateConfirmDeliveryCommandHandler(),
		MarkClientAbsent:      c.CreateMarkClientAbsentCommandHandler(),
		GetQuoteRequest:       c.CreateGetQuoteRequestQueryHandler(),
		ListCourierDeliveries: c.CreateListCourierDeliveriesQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateResumeSentQuotesCommandHandler(), c.cfg.Recovery(), c.logger)
}

// Health checks the database and the notification broker.
func (c *CompositionRoot) Health(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return errors.Join(sqlDB.PingContext(ctx), c.redisClient.Ping(ctx).Err())
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// NewObjectStore connects the S3 document store.
func NewObjectStore(ctx context.Context, cfg Config) (*s3store.Store, error) {
	client, err := s3store.NewClient(ctx, cfg.S3())
	if err != nil {
		return nil, err
	}
	return s3store.NewStore(client, cfg.S3Bucket, cfg.S3PublicBaseURL)
}
