package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"medisync/app/controllers"
	"medisync/app/db"
	jwtutil "medisync/app/jwt"
	"medisync/app/middleware"
	"medisync/app/mirror"
	"medisync/app/models"
	"medisync/app/repo"
	"medisync/app/services"
	"medisync/app/session"
	"medisync/config"
	"medisync/global"
	"medisync/router"
)

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Mirror   *mirror.Store
	Router   http.Handler
	Users    *services.UserService
	Patients *services.PatientService
	Dataset  *services.DatasetService
	Sessions *session.Store
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg

	// Connect authoritative relational store
	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
		Path:     cfg.DB.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.Patient{}, &models.SyncFailure{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Connect the document-store mirror. Never fatal: a dead mirror
	// degrades to logged divergence.
	m := mirror.Connect(mirror.Config{
		Endpoint:  cfg.Mirror.Endpoint,
		Namespace: cfg.Mirror.Namespace,
		Database:  cfg.Mirror.Database,
		User:      cfg.Mirror.User,
		Pass:      cfg.Mirror.Pass,
	}, global.Logger)

	// Session store is optional; without redis logout is best-effort.
	var sessions *session.Store
	if cfg.Redis.Addr != "" {
		sessions = session.NewStore(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB, time.Duration(cfg.JWT.ExpMin)*time.Minute)
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	patientRepo := repo.NewPatientRepository(gdb)
	failureRepo := repo.NewSyncFailureRepository(gdb)
	drift := services.NewDriftRecorder(failureRepo, global.Logger)
	userSvc := services.NewUserService(userRepo, m, drift)
	patientSvc := services.NewPatientService(patientRepo, m, drift)
	datasetSvc := services.NewDatasetService(cfg.Dataset.Path, global.Logger)
	if err := datasetSvc.Watch(); err != nil {
		global.Logger.Warn().Err(err).Msg("dataset watcher not started")
	}
	if err := userSvc.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		global.Logger.Warn().Err(err).Msg("ensure admin failed")
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(userSvc, signer, sessions)
	patientCtrl := controllers.NewPatientController(patientSvc)
	datasetCtrl := controllers.NewDatasetController(datasetSvc, cfg.Dataset.PreviewRows)
	healthCtrl := controllers.NewHealthController(gdb, m)
	adminCtrl := controllers.NewAdminController(userSvc, m, failureRepo)
	mw := &middleware.Auth{Signer: signer, Sessions: sessions}

	// Router
	h := router.NewRouter(authCtrl, patientCtrl, datasetCtrl, healthCtrl, adminCtrl, mw)
	h = middleware.Logging(h)

	return &App{
		Cfg:      cfg,
		DB:       gdb,
		Mirror:   m,
		Router:   h,
		Users:    userSvc,
		Patients: patientSvc,
		Dataset:  datasetSvc,
		Sessions: sessions,
	}, nil
}
