package config

import (
	"errors"

	"pdf-table-extractor/internal/domain"
	"pdf-table-extractor/internal/infra/supabase"
	"pdf-table-extractor/internal/repository"
	"pdf-table-extractor/internal/service"
	"pdf-table-extractor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient
	Parser         domain.PageParser
	ExtractService domain.SourceProcessor
	BatchService   domain.BatchProcessor
	ArchiveService domain.Archiver
	Encoders       map[string]domain.Encoder
	ArchiveStore   domain.ArchiveStore
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Storage is optional: without Supabase credentials the service still
	// extracts and returns archives inline, it just cannot persist them.
	supabaseClient := supabase.NewSupabaseClient(config, appLogger)
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Warn("Failed to initialize Supabase client", "error", err)
		}
	}

	parser := service.NewPDFParser(appLogger, config.GetPageTimeout())
	extractService := service.NewExtractService(parser, appLogger, config.GetUploadPath())
	batchService := service.NewBatchService(extractService, appLogger, config.GetExtractWorkers())

	textEncoder := service.NewDocxEncoder()
	tabularEncoder := service.NewXlsxEncoder()
	structuredEncoder := service.NewJSONEncoder()
	archiveService := service.NewArchiveService(textEncoder, tabularEncoder, structuredEncoder, appLogger)

	encoders := map[string]domain.Encoder{
		"docx": textEncoder,
		"xlsx": tabularEncoder,
		"json": structuredEncoder,
	}

	archiveStore, err := repository.NewSupabaseArchiveRepository(supabaseClient, config.GetArchiveBucket(), appLogger)
	if err != nil {
		if errors.Is(err, domain.ErrArchiveStoreDisabled) {
			appLogger.Info("Archive store disabled; archives are returned inline only")
		} else {
			appLogger.Warn("Archive store unavailable", "error", err)
		}
		archiveStore = nil
	}

	return &Container{
		Config:         config,
		Logger:         appLogger,
		SupabaseClient: supabaseClient,
		Parser:         parser,
		ExtractService: extractService,
		BatchService:   batchService,
		ArchiveService: archiveService,
		Encoders:       encoders,
		ArchiveStore:   archiveStore,
	}
}
