package container

import (
	"context"
	"fmt"
	"time"

	"github.com/dnk-music/intake/cmd/intake/repository"
	"github.com/dnk-music/intake/cmd/intake/service"
	"github.com/dnk-music/intake/common/blob"
	"github.com/dnk-music/intake/common/bootstrap"
	"github.com/dnk-music/intake/common/disk"
	"github.com/dnk-music/intake/common/media"
	rediscommon "github.com/dnk-music/intake/common/redis"
	"github.com/dnk-music/intake/common/sheets"
)

// sheetLockTTL bounds how long a crashed append can hold the sheet lock
const sheetLockTTL = time.Minute

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	Components *bootstrap.Components

	// Repositories
	ReleaseRepo   *repository.ReleaseRepository
	ProcessedRepo *repository.ProcessedRepository
	UserRepo      *repository.UserRepository
	ProfileRepo   *repository.ProfileRepository
	FileRepo      *repository.FileRepository

	// Collaborators
	Disk   *disk.Client
	Sheets *sheets.Client
	Blobs  *blob.Store

	// Services
	UserService     *service.UserService
	ProfileService  *service.ProfileService
	FileService     *service.FileService
	ReleaseService  *service.ReleaseService
	DeliveryService *service.DeliveryService
	DocsService     *service.DocsService
}

// NewContainer initializes all services and repositories once
func NewContainer(ctx context.Context, components *bootstrap.Components) (*Container, error) {
	cfg := components.Config
	log := components.Logger

	// Repositories
	releaseRepo := repository.NewReleaseRepository(components.DB, log)
	processedRepo := repository.NewProcessedRepository(components.DB, log)
	userRepo := repository.NewUserRepository(components.DB, log)
	profileRepo := repository.NewProfileRepository(components.DB, log)
	fileRepo := repository.NewFileRepository(components.DB, log)

	// External collaborators
	diskClient := disk.NewClient(cfg.Disk, components.Cache, log)
	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets, log)
	if err != nil {
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}
	blobs := blob.NewStore(cfg.Media.StagingDir)
	prober := media.NewProber(cfg.Media.FFprobeBinary)
	transcoder := media.NewTranscoder(cfg.Media.FFmpegBinary, cfg.Media.TempDir)

	// Services (bottom-up: dependencies first)
	userService := service.NewUserService(userRepo, components.Redis, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	profileService := service.NewProfileService(profileRepo, userRepo, log)
	fileService := service.NewFileService(fileRepo, blobs, log)

	relocator := service.NewRelocator(diskClient, fileService, transcoder, cfg.Disk.RootFolder, log)
	releaseService := service.NewReleaseService(releaseRepo, profileRepo, userRepo, log)

	deliveryService := service.NewDeliveryService(
		releaseRepo,
		processedRepo,
		relocator,
		fileService,
		prober,
		sheetsClient,
		sheetLock(components.Redis, cfg.Sheets.DeliverySheet),
		cfg.Sheets.DeliverySheet,
		log,
	)
	docsService := service.NewDocsService(
		releaseRepo,
		processedRepo,
		sheetsClient,
		sheetLock(components.Redis, cfg.Sheets.DocsSheet),
		cfg.Sheets.DocsSheet,
		log,
	)

	return &Container{
		Components:      components,
		ReleaseRepo:     releaseRepo,
		ProcessedRepo:   processedRepo,
		UserRepo:        userRepo,
		ProfileRepo:     profileRepo,
		FileRepo:        fileRepo,
		Disk:            diskClient,
		Sheets:          sheetsClient,
		Blobs:           blobs,
		UserService:     userService,
		ProfileService:  profileService,
		FileService:     fileService,
		ReleaseService:  releaseService,
		DeliveryService: deliveryService,
		DocsService:     docsService,
	}, nil
}

// sheetLock builds a lock factory for one worksheet. Each action run gets a
// fresh mutex so concurrent runs never share a lock token.
func sheetLock(client *rediscommon.Client, sheetName string) func() service.Locker {
	return func() service.Locker {
		return rediscommon.NewMutex(client, "sheet:"+sheetName, sheetLockTTL)
	}
}
