package main

import (
	"errors"
	"fmt"

	"github.com/technova/careers-api/internal/adapters/filestore"
	"github.com/technova/careers-api/internal/adapters/mailer"
	"github.com/technova/careers-api/internal/bootstrap"
	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/data"
	"github.com/technova/careers-api/internal/service"
)

// adminStores are the record stores a command works against.
type adminStores struct {
	Applications core.ApplicationRepository
	Contacts     core.ContactMessageRepository
	Files        core.FileStore
	close        func() error
}

func (s *adminStores) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// connectStores opens Postgres and the upload directory from the loaded configuration.
func connectStores(cmd *commandContext) (*adminStores, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cmd.Config.Postgres, Logger: cmd.Logger})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	files, err := filestore.NewLocalStore(filestore.Options{
		Dir:          cmd.Config.Uploads.Dir,
		MaxBytes:     cmd.Config.Uploads.MaxBytes,
		AllowedTypes: cmd.Config.Uploads.AllowedTypes,
		Logger:       cmd.Logger,
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close db: %w", closeErr))
		}
		return nil, fmt.Errorf("open upload directory: %w", err)
	}

	return &adminStores{
		Applications: data.NewApplicationRepo(db),
		Contacts:     data.NewContactMessageRepo(db),
		Files:        files,
		close:        db.Close,
	}, nil
}

// adminServices are the services shared with the HTTP API, so both surfaces
// delete and update records the same way.
type adminServices struct {
	Applications *service.ApplicationService
	Contacts     *service.ContactService
}

// newAdminServices wires the stores into the record services. Admin commands never
// submit forms, so mail goes to the log.
func newAdminServices(cmd *commandContext, stores *adminStores) *adminServices {
	notifyDeps := service.NotifierDeps{Mailer: mailer.NewLogMailer(cmd.Logger)}
	pipeline := service.PipelineConfig{Logger: cmd.Logger}
	return &adminServices{
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{
			Stores: service.ApplicationStores{
				Applications: stores.Applications,
				Files:        stores.Files,
				Jobs:         data.NewJobListingRepo(),
			},
			Notify: notifyDeps,
			Config: pipeline,
		}),
		Contacts: service.NewContactService(service.ContactServiceOptions{
			Repo:   stores.Contacts,
			Notify: notifyDeps,
			Config: pipeline,
		}),
	}
}

// withStores opens the stores for the duration of fn.
func withStores(cmd *commandContext, fn func(*adminServices) error) error {
	stores, err := cmd.openStores(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := stores.Close(); closeErr != nil {
			cmd.Logger.Warn("close stores failed", "error", closeErr)
		}
	}()
	return fn(newAdminServices(cmd, stores))
}
